package solver

import (
	"strings"

	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Aldehyde/ketone chapter solvers. The chemical-test rules (iodoform,
// Tollens, Fehling) sit above the transformation rules in the registry so a
// "which test distinguishes" question is not answered with a synthesis.

// methylKetoneFormula reports whether a token spells a CH3-CO- formula
// (ch3coch3, ch3coc6h5). Tokens continuing with a second oxygen are acids
// and esters (ch3cooh, ch3cooc2h5), which fail the iodoform test.
func methylKetoneFormula(t question.NormalizedText) bool {
	for _, tok := range t.Tokens() {
		if strings.HasPrefix(tok, "ch3co") && !strings.HasPrefix(tok, "ch3coo") {
			return true
		}
	}
	return false
}

// nitrileFormula reports whether a token spells a -CN formula (ch3cn,
// c6h5cn) or the bare cn group.
func nitrileFormula(t question.NormalizedText) bool {
	for _, tok := range t.Tokens() {
		if strings.HasSuffix(tok, "cn") {
			return true
		}
	}
	return false
}

type iodoformSolver struct{}

func (iodoformSolver) Name() string  { return "iodoform" }
func (iodoformSolver) Topic() string { return TopicCarbonyl }

func (iodoformSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("iodoform", "haloform") {
		return true
	}
	return (t.HasToken("i2") || t.Contains("iodine")) &&
		t.ContainsAny("naoh", "koh", "alkali") &&
		(t.ContainsAny("methyl ketone", "acetone", "acetaldehyde", "ethanal", "ethanol", "acetophenone") ||
			methylKetoneFormula(t))
}

func (s iodoformSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Iodoform (haloform) reaction",
		Product:  "Yellow precipitate of iodoform (CHI3) plus the carboxylate with one carbon fewer",
		Notes:    "Positive for CH3-CO- compounds and for alcohols oxidizable to them (ethanol, 2-ols).",
		Tip:      "Ethanol gives a positive iodoform test but methanol does not; this pair is the classic distinguishing question.",
		Mistake:  "Expecting benzaldehyde to respond; it has no CH3-CO- group.",
		Steps: []string{
			"Alpha-hydrogens of the methyl ketone are iodinated by I2/NaOH",
			"Hydroxide cleaves the C-CI3 bond",
			"CHI3 precipitates as the yellow solid",
		},
		TopicTags: []string{TopicCarbonyl, "chemical_tests"},
		NCERT:     ncertIn,
	}
}

type tollensSolver struct{}

func (tollensSolver) Name() string  { return "tollens" }
func (tollensSolver) Topic() string { return TopicCarbonyl }

func (tollensSolver) Detect(t question.NormalizedText) bool {
	return t.ContainsAny("tollens", "tollen's", "silver mirror", "ammoniacal silver nitrate", "ammoniacal agno3")
}

func (s tollensSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Tollens' test",
		Product:  "Silver mirror on the tube wall (aldehyde oxidized to the carboxylate, Ag+ reduced to Ag)",
		Notes:    "Ammoniacal AgNO3 ([Ag(NH3)2]+) is a mild oxidant; ketones do not respond.",
		Tip:      "The standard aldehyde-vs-ketone distinguisher; glucose also answers positively through its -CHO group.",
		Mistake:  "Claiming ketones give a slow mirror; they give none.",
		Steps: []string{
			"Warm the compound with Tollens' reagent",
			"An aldehyde reduces Ag+ to metallic silver, seen as the mirror",
		},
		TopicTags: []string{TopicCarbonyl, "chemical_tests"},
		NCERT:     ncertIn,
	}
}

type fehlingSolver struct{}

func (fehlingSolver) Name() string  { return "fehling" }
func (fehlingSolver) Topic() string { return TopicCarbonyl }

func (fehlingSolver) Detect(t question.NormalizedText) bool {
	return t.ContainsAny("fehling", "red precipitate of cu2o", "cu2o precipitate")
}

func (s fehlingSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Fehling's test",
		Product:  "Reddish-brown precipitate of Cu2O (aliphatic aldehyde oxidized to the carboxylate)",
		Notes:    "Cu2+ in alkaline tartrate is reduced to Cu2O. Aromatic aldehydes like benzaldehyde do not respond.",
		Tip:      "Benzaldehyde fails Fehling's but passes Tollens'; use this pair to separate aliphatic from aromatic aldehydes.",
		Mistake:  "Using Fehling's to detect benzaldehyde; the negative result is the point.",
		Steps: []string{
			"Warm the compound with Fehling's solutions A and B",
			"An aliphatic aldehyde deposits the red Cu2O precipitate",
		},
		TopicTags: []string{TopicCarbonyl, "chemical_tests"},
		NCERT:     ncertIn,
	}
}

// cannizzaroSolver carries the literal-keyword override: the word
// "cannizzaro" in the question always matches, regardless of reagent cues.
type cannizzaroSolver struct{}

func (cannizzaroSolver) Name() string  { return "cannizzaro" }
func (cannizzaroSolver) Topic() string { return TopicCarbonyl }

func (cannizzaroSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("cannizzaro") {
		return true
	}
	return t.ContainsAny("benzaldehyde", "c6h5cho", "formaldehyde", "hcho", "methanal") &&
		t.ContainsAny("conc. naoh", "conc naoh", "concentrated naoh", "conc. koh", "conc koh", "concentrated koh", "concentrated alkali", "conc. alkali", "50% naoh") &&
		!t.ContainsAny("dilute", "dil.")
}

func (s cannizzaroSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "A 1:1 mixture of the alcohol and the carboxylate (disproportionation)"
	if t.ContainsAny("benzaldehyde", "c6h5cho") {
		product = "Benzyl alcohol (C6H5CH2OH) and sodium benzoate (C6H5COONa)"
	} else if t.ContainsAny("formaldehyde", "hcho", "methanal") {
		product = "Methanol (CH3OH) and sodium formate (HCOONa)"
	}
	return &answer.ReactionResult{
		Reaction: "Cannizzaro reaction",
		Product:  product,
		Notes:    "Only aldehydes without an alpha-hydrogen disproportionate; one molecule is reduced while another is oxidized via hydride transfer.",
		Tip:      "The no-alpha-hydrogen condition is the examinable point; acetaldehyde undergoes aldol instead.",
		Mistake:  "Running Cannizzaro on an alpha-H aldehyde; aldol condensation wins there.",
		Steps: []string{
			"OH- adds to one aldehyde molecule",
			"Hydride transfers from that tetrahedral adduct to a second aldehyde",
			"Workup gives the alcohol plus the carboxylate salt",
		},
		TopicTags: []string{TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

// baeyerVilligerSolver keeps its substrate-specific branch ahead of the
// generic ketone rule: a named acetophenone question must name phenyl
// acetate, not the generic ester sentence.
type baeyerVilligerSolver struct{}

func (baeyerVilligerSolver) Name() string  { return "baeyer_villiger" }
func (baeyerVilligerSolver) Topic() string { return TopicCarbonyl }

func (baeyerVilligerSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("baeyer-villiger", "baeyer villiger") {
		return true
	}
	return t.ContainsAny("ketone", "acetophenone", "cyclohexanone") &&
		t.ContainsAny("peracid", "peroxyacid", "mcpba", "peroxybenzoic", "perbenzoic", "ch3co3h", "peracetic")
}

func (s baeyerVilligerSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The ester from oxygen insertion next to the carbonyl (ketone -> ester)"
	if t.Contains("acetophenone") {
		product = "Phenyl acetate (CH3COOC6H5); the phenyl group migrates in preference to methyl"
	} else if t.Contains("cyclohexanone") {
		product = "epsilon-Caprolactone (ring-expanded cyclic ester)"
	}
	return &answer.ReactionResult{
		Reaction: "Baeyer-Villiger oxidation",
		Product:  product,
		Notes:    "A peracid inserts an oxygen between the carbonyl carbon and the more substituted (better migrating) group.",
		Tip:      "Migratory aptitude decides the ester: aryl and more substituted alkyl groups move before methyl.",
		Mistake:  "Inserting the oxygen on the methyl side of acetophenone; phenyl migrates, so the product is phenyl acetate.",
		Steps: []string{
			"The peracid adds to the carbonyl to form the Criegee intermediate",
			"The better migrating group moves to oxygen as the peracid O-O bond breaks",
		},
		TopicTags: []string{TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type clemmensenSolver struct{}

func (clemmensenSolver) Name() string  { return "clemmensen" }
func (clemmensenSolver) Topic() string { return TopicCarbonyl }

func (clemmensenSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("clemmensen") {
		return true
	}
	return t.ContainsAny("zn-hg", "zn/hg", "zinc amalgam", "amalgamated zinc") &&
		t.ContainsAny("hcl", "hydrochloric")
}

func (s clemmensenSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The hydrocarbon: C=O reduced fully to CH2"
	if t.Contains("acetophenone") {
		product = "Ethylbenzene (C6H5C2H5)"
	}
	return &answer.ReactionResult{
		Reaction: "Clemmensen reduction",
		Product:  product,
		Notes:    "Zinc amalgam and concentrated HCl reduce the carbonyl of aldehydes/ketones to a methylene group; acidic conditions.",
		Tip:      "Pair it with Wolff-Kishner in answers: same outcome, acidic versus basic medium, chosen by the substrate's sensitivity.",
		Mistake:  "Stopping at the alcohol; the reduction goes all the way to the hydrocarbon.",
		Steps: []string{
			"Treat the carbonyl compound with Zn-Hg and conc. HCl",
			"The C=O group is reduced to CH2",
		},
		TopicTags: []string{TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type wolffKishnerSolver struct{}

func (wolffKishnerSolver) Name() string  { return "wolff_kishner" }
func (wolffKishnerSolver) Topic() string { return TopicCarbonyl }

func (wolffKishnerSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("wolff-kishner", "wolff kishner") {
		return true
	}
	return t.ContainsAny("hydrazine", "nh2nh2", "n2h4") &&
		t.ContainsAny("koh", "naoh", "ethylene glycol", "glycol")
}

func (s wolffKishnerSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Wolff-Kishner reduction",
		Product:  "The hydrocarbon: C=O reduced to CH2 via the hydrazone",
		Notes:    "Hydrazine forms the hydrazone, which loses N2 on heating with KOH in ethylene glycol.",
		Tip:      "Choose Wolff-Kishner over Clemmensen when the substrate cannot survive acid, and vice versa for base-sensitive ones.",
		Mistake:  "Omitting the high-boiling glycol solvent; the deprotonation/decomposition step needs the heat.",
		Steps: []string{
			"Carbonyl + NH2NH2 -> hydrazone",
			"Hydrazone + KOH/ethylene glycol, heat -> hydrocarbon + N2",
		},
		TopicTags: []string{TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type rosenmundSolver struct{}

func (rosenmundSolver) Name() string  { return "rosenmund" }
func (rosenmundSolver) Topic() string { return TopicCarbonyl }

func (rosenmundSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("rosenmund") {
		return true
	}
	return t.ContainsAny("acyl chloride", "acid chloride", "benzoyl chloride", "c6h5cocl", "cocl") &&
		t.ContainsAny("pd-baso4", "pd/baso4", "barium sulfate", "barium sulphate", "poisoned palladium", "poisoned pd")
}

func (s rosenmundSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The aldehyde (reduction stops at -CHO)"
	if t.ContainsAny("benzoyl chloride", "c6h5cocl") {
		product = "Benzaldehyde (C6H5CHO)"
	}
	return &answer.ReactionResult{
		Reaction: "Rosenmund reduction",
		Product:  product,
		Notes:    "H2 over Pd poisoned with BaSO4 (and quinoline-sulfur) hydrogenates the acid chloride but not the aldehyde product.",
		Tip:      "The poison is the answerable detail: it stops the reduction at the aldehyde stage.",
		Mistake:  "Reducing through to the alcohol; unpoisoned catalyst would, the poisoned one does not.",
		Steps: []string{
			"Acid chloride + H2 over Pd-BaSO4",
			"Hydrogenolysis of the C-Cl bond gives the aldehyde",
		},
		TopicTags: []string{TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type stephenSolver struct{}

func (stephenSolver) Name() string  { return "stephen" }
func (stephenSolver) Topic() string { return TopicCarbonyl }

func (stephenSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("stephen reaction", "stephen reduction") {
		return true
	}
	return (t.ContainsAny("nitrile", "cyanide") || nitrileFormula(t)) &&
		t.ContainsAny("sncl2", "stannous chloride") &&
		t.Contains("hcl")
}

func (s stephenSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Stephen reduction",
		Product:  "The aldehyde, via hydrolysis of the imine hydrochloride intermediate",
		Notes:    "SnCl2/HCl partially reduces the nitrile to the iminium salt, which water converts to -CHO.",
		Tip:      "Contrast with LiAlH4, which takes the nitrile all the way to the primary amine.",
		Steps: []string{
			"R-CN + SnCl2/HCl -> R-CH=NH·HCl",
			"Hydrolysis gives R-CHO",
		},
		TopicTags: []string{TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type kucherovSolver struct{}

func (kucherovSolver) Name() string  { return "kucherov" }
func (kucherovSolver) Topic() string { return TopicCarbonyl }

func (kucherovSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("kucherov", "kutscherov") {
		return true
	}
	return t.ContainsAny("ethyne", "acetylene", "alkyne", "propyne", "c2h2") &&
		t.ContainsAny("hgso4", "mercuric sulfate", "mercuric sulphate", "hg2+") &&
		t.ContainsAny("h2so4", "dilute sulfuric", "dilute sulphuric", "water", "hydration")
}

func (s kucherovSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The methyl ketone (Markovnikov hydration of the alkyne)"
	if t.ContainsAny("ethyne", "acetylene", "c2h2") {
		product = "Acetaldehyde (CH3CHO); ethyne is the one alkyne that gives an aldehyde"
	} else if t.Contains("propyne") {
		product = "Acetone (CH3COCH3)"
	}
	return &answer.ReactionResult{
		Reaction: "Kucherov reaction (alkyne hydration)",
		Product:  product,
		Notes:    "Hg2+-catalysed Markovnikov addition of water gives the enol, which tautomerizes to the carbonyl compound.",
		Tip:      "Remember the exception: every higher alkyne gives a ketone, only ethyne gives the aldehyde.",
		Mistake:  "Writing the enol as the final product; the keto tautomer is the answer.",
		Steps: []string{
			"Water adds across the triple bond Markovnikov-style under HgSO4/H2SO4",
			"The vinyl alcohol tautomerizes to the carbonyl compound",
		},
		TopicTags: []string{TopicCarbonyl, TopicAlkenes},
		NCERT:     ncertIn,
	}
}

type aldolSolver struct{}

func (aldolSolver) Name() string  { return "aldol" }
func (aldolSolver) Topic() string { return TopicCarbonyl }

func (aldolSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("aldol") {
		return true
	}
	return t.ContainsAny("acetaldehyde", "ethanal", "ch3cho", "acetone", "propanone") &&
		t.ContainsAny("dilute naoh", "dil. naoh", "dil naoh", "dilute koh", "dil. koh", "dilute alkali", "dilute base", "ba(oh)2")
}

func (s aldolSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The beta-hydroxy carbonyl compound (aldol); heating dehydrates it to the alpha,beta-unsaturated carbonyl"
	if t.ContainsAny("acetaldehyde", "ethanal", "ch3cho") {
		product = "3-Hydroxybutanal (aldol); crotonaldehyde (but-2-enal) on warming"
	}
	return &answer.ReactionResult{
		Reaction: "Aldol condensation",
		Product:  product,
		Notes:    "Requires at least one alpha-hydrogen; dilute base generates the enolate that adds to a second carbonyl molecule.",
		Tip:      "Dilute base means aldol, concentrated base on a no-alpha-H aldehyde means Cannizzaro; the condition plus substrate decide.",
		Mistake:  "Running aldol on benzaldehyde alone; with no alpha-hydrogen it cannot self-condense.",
		Steps: []string{
			"Dilute OH- removes an alpha-hydrogen to give the enolate",
			"The enolate adds to the carbonyl of a second molecule",
			"Protonation gives the aldol; warming eliminates water",
		},
		TopicTags: []string{TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type grignardSolver struct{}

func (grignardSolver) Name() string  { return "grignard" }
func (grignardSolver) Topic() string { return TopicCarbonyl }

func (grignardSolver) Detect(t question.NormalizedText) bool {
	return t.ContainsAny("grignard", "rmgx", "ch3mgbr", "c2h5mgbr", "mgbr", "mgcl", "mgi", "alkyl magnesium", "alkylmagnesium")
}

func (s grignardSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "An alcohol after aqueous workup: 1° from HCHO, 2° from other aldehydes, 3° from ketones"
	switch {
	case t.ContainsAny("hcho", "formaldehyde", "methanal"):
		product = "A primary alcohol (one carbon added to the Grignard alkyl group)"
	case t.ContainsAny("ketone", "acetone", "propanone"):
		product = "A tertiary alcohol"
	case t.ContainsAny("co2", "dry ice", "carbon dioxide"):
		product = "A carboxylic acid after acid workup (RMgX + CO2 -> RCOOH)"
	case t.ContainsAny("aldehyde", "ch3cho", "acetaldehyde", "ethanal"):
		product = "A secondary alcohol"
	}
	return &answer.ReactionResult{
		Reaction: "Grignard reaction",
		Product:  product,
		Notes:    "The carbanion-like R of RMgX adds to the carbonyl carbon; the alkoxide intermediate is protonated on workup. Dry ether solvent is mandatory.",
		Tip:      "HCHO -> 1°, RCHO -> 2°, ketone -> 3° alcohol: this ladder is the single most repeated Grignard question.",
		Mistake:  "Allowing moisture; any water destroys the reagent to the alkane before it can add.",
		Steps: []string{
			"Prepare RMgX from R-X and Mg in dry ether",
			"R- adds to the carbonyl carbon to form the alkoxide",
			"Dilute acid workup liberates the alcohol",
		},
		TopicTags: []string{TopicCarbonyl, TopicAlcohols},
		NCERT:     ncertIn,
	}
}
