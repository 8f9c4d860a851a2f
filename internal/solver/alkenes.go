package solver

import (
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Alkene/alkyne chapter solvers. The addition rules here are the broadest
// detectors in the catalog, so the registry places them after every named
// reaction; markovnikovSolver in particular matches any "alkene + HX" text
// and must stay last.

type ozonolysisSolver struct{}

func (ozonolysisSolver) Name() string  { return "ozonolysis" }
func (ozonolysisSolver) Topic() string { return TopicAlkenes }

func (ozonolysisSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("ozonolysis") {
		return true
	}
	return (t.HasToken("o3") || t.Contains("ozone")) &&
		t.ContainsAny("alkene", "propene", "ethene", "butene", "pentene", "double bond", "c=c")
}

func (s ozonolysisSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "Two carbonyl fragments from cleavage of the C=C bond (reductive workup with Zn/H2O)"
	if t.ContainsAny("2-butene", "but-2-ene") {
		product = "Two molecules of acetaldehyde (CH3CHO)"
	} else if t.Contains("propene") {
		product = "Acetaldehyde (CH3CHO) and formaldehyde (HCHO)"
	}
	return &answer.ReactionResult{
		Reaction: "Ozonolysis",
		Product:  product,
		Notes:    "O3 adds across the double bond to the ozonide; Zn/H2O workup cleaves it to aldehydes/ketones without over-oxidation.",
		Tip:      "Work backwards in structure-determination questions: reassemble the alkene by joining the carbonyl carbons.",
		Mistake:  "Skipping the Zn in the workup; without it H2O2 oxidizes the aldehyde fragments to acids.",
		Steps: []string{
			"O3 adds across C=C to form the ozonide",
			"Zn/H2O cleaves the ozonide to two carbonyl compounds",
		},
		TopicTags: []string{TopicAlkenes, TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type hydroborationSolver struct{}

func (hydroborationSolver) Name() string  { return "hydroboration" }
func (hydroborationSolver) Topic() string { return TopicAlkenes }

func (hydroborationSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("hydroboration") {
		return true
	}
	return t.ContainsAny("b2h6", "diborane", "bh3") &&
		t.ContainsAny("h2o2", "hydrogen peroxide", "alkene", "propene", "ethene", "butene")
}

func (s hydroborationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The anti-Markovnikov alcohol (OH on the less substituted carbon)"
	if t.Contains("propene") {
		product = "Propan-1-ol (n-propyl alcohol)"
	}
	return &answer.ReactionResult{
		Reaction: "Hydroboration-oxidation",
		Product:  product,
		Notes:    "BH3 adds boron to the less hindered carbon; oxidation with H2O2/OH- replaces boron by -OH with retention.",
		Tip:      "This is the clean route to the anti-Markovnikov alcohol; acid-catalysed hydration gives the Markovnikov isomer instead.",
		Mistake:  "Writing propan-2-ol for propene; that is the acid-hydration product, not the hydroboration one.",
		Steps: []string{
			"B2H6 adds across C=C (B to the terminal carbon)",
			"H2O2/OH- oxidizes the trialkylborane to the alcohol",
		},
		TopicTags: []string{TopicAlkenes, TopicAlcohols},
		NCERT:     ncertIn,
	}
}

type lindlarBirchSolver struct{}

func (lindlarBirchSolver) Name() string  { return "lindlar_birch" }
func (lindlarBirchSolver) Topic() string { return TopicAlkenes }

func (lindlarBirchSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("lindlar") {
		return true
	}
	return t.ContainsAny("alkyne", "yne") &&
		t.ContainsAny("na/liquid nh3", "na / liquid nh3", "na in liquid nh3", "na in liquid ammonia", "sodium in liquid ammonia", "birch")
}

func (s lindlarBirchSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "cis-Alkene (H2 over Lindlar's catalyst, partial hydrogenation)"
	if t.ContainsAny("na/liquid nh3", "na / liquid nh3", "na in liquid nh3", "na in liquid ammonia", "sodium in liquid ammonia", "birch") {
		product = "trans-Alkene (dissolving-metal reduction with Na/liquid NH3)"
	}
	return &answer.ReactionResult{
		Reaction: "Partial reduction of alkynes",
		Product:  product,
		Notes:    "Lindlar's poisoned Pd delivers both hydrogens from one face (cis); the radical-anion path in Na/NH3 gives the trans isomer.",
		Tip:      "Lindlar -> cis, Na/liquid NH3 -> trans; the stereochemical pairing is the entire question.",
		Mistake:  "Swapping the two outcomes; this is among the most common stereochemistry slips.",
		Steps: []string{
			"Choose the reagent for the required geometry",
			"Stop at the alkene; neither condition reduces further",
		},
		TopicTags: []string{TopicAlkenes},
		NCERT:     ncertIn,
	}
}

// alkeneHalogenationSolver is applicable-but-underspecified when no solvent
// is named: the product depends on it, so the solver answers with a
// clarification prompt rather than a guess.
type alkeneHalogenationSolver struct{}

func (alkeneHalogenationSolver) Name() string  { return "alkene_halogenation" }
func (alkeneHalogenationSolver) Topic() string { return TopicAlkenes }

func (alkeneHalogenationSolver) Detect(t question.NormalizedText) bool {
	return t.ContainsAny("alkene", "propene", "ethene", "butene", "double bond", "c=c") &&
		t.ContainsAny("br2", "bromine", "cl2", "chlorine") &&
		!t.ContainsAny("phosphorus", "red p", "koh", "naoh", "sunlight") &&
		!t.HasAnyToken("fe", "febr3", "fecl3", "light", "uv", "hv")
}

func (s alkeneHalogenationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	base := answer.ReactionResult{
		Reaction:  "Halogenation of alkenes",
		Tip:       "Decolourization of bromine is the unsaturation test only in CCl4 or as bromine water; always state the medium.",
		TopicTags: []string{TopicAlkenes},
		NCERT:     ncertIn,
	}
	switch {
	case t.ContainsAny("ccl4", "carbon tetrachloride", "inert solvent"):
		base.Product = "The vicinal dihalide (anti addition); for propene + Br2/CCl4, 1,2-dibromopropane"
		base.Notes = "The bromonium-ion intermediate forces anti addition; the red-brown colour of Br2 is discharged."
		base.Steps = []string{
			"Br2 forms the cyclic bromonium ion on one face",
			"Br- opens it from the opposite face (anti addition)",
		}
	case t.ContainsAny("water", "h2o", "bromine water", "aqueous"):
		base.Product = "The halohydrin (X on one carbon, OH on the more substituted one); for propene, 1-bromopropan-2-ol"
		base.Notes = "Water outcompetes Br- in opening the bromonium ion, attacking the more substituted carbon."
		base.Steps = []string{
			"Br2 forms the bromonium ion",
			"Water opens it at the more substituted carbon; loss of H+ gives the halohydrin",
		}
	default:
		base.Product = "Please specify the solvent: Br2 in CCl4 gives the 1,2-dibromide, while Br2 in water gives the bromohydrin."
		base.Notes = "The medium decides which nucleophile opens the bromonium ion, so the product cannot be named without it."
		base.Clarify = true
		base.Flags = []string{"ambiguous_conditions", "solvent_unspecified"}
	}
	return &base
}

// markovnikovSolver is the deliberately broad HX-addition fallback; every
// more specific alkene rule outranks it.
type markovnikovSolver struct{}

func (markovnikovSolver) Name() string  { return "markovnikov" }
func (markovnikovSolver) Topic() string { return TopicAlkenes }

func (markovnikovSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("markovnikov", "markownikoff", "peroxide effect", "kharasch") {
		return true
	}
	return t.ContainsAny("alkene", "propene", "ethene", "butene", "double bond", "c=c") &&
		(t.ContainsAny("hbr", "hydrogen bromide", "hcl", "hydrogen chloride", "hydrogen iodide") ||
			t.HasAnyToken("hi", "hx"))
}

func (s markovnikovSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	peroxide := t.ContainsAny("peroxide", "h2o2", "(c6h5co)2o2", "benzoyl peroxide")
	hbr := t.ContainsAny("hbr", "hydrogen bromide")

	if peroxide && hbr {
		return &answer.ReactionResult{
			Reaction: "Anti-Markovnikov addition (peroxide effect)",
			Product:  "The 1-halo product: H adds to the more substituted carbon; for propene + HBr/peroxide, 1-bromopropane",
			Notes:    "Peroxides switch the mechanism to a free-radical chain, and only HBr shows the effect.",
			Tip:      "HCl and HI do not show the peroxide effect; their radical steps are energetically unfavourable.",
			Mistake:  "Applying the peroxide effect to HCl or HI additions.",
			Steps: []string{
				"Peroxide homolysis starts the radical chain",
				"Br· adds to the terminal carbon (more stable radical)",
				"H abstraction from HBr completes the anti-Markovnikov product",
			},
			TopicTags:  []string{TopicAlkenes},
			Flags:      []string{"anti_markovnikov", "peroxide_effect"},
			Confidence: 0.98,
			NCERT:      ncertIn,
		}
	}
	return &answer.ReactionResult{
		Reaction: "Markovnikov addition",
		Product:  "The 2-halo product: halogen on the more substituted carbon; for propene + HBr, 2-bromopropane",
		Notes:    "The proton adds first to give the more stable carbocation, which the halide then captures.",
		Tip:      "Justify the regiochemistry through carbocation stability, not the rule's wording.",
		Mistake:  "Placing the halogen on the terminal carbon in the absence of peroxide.",
		Steps: []string{
			"H+ adds to the less substituted carbon, forming the 2° carbocation",
			"X- attacks the carbocation",
		},
		TopicTags:  []string{TopicAlkenes},
		Flags:      []string{"markovnikov"},
		Confidence: 0.98,
		NCERT:      ncertIn,
	}
}
