package solver

import (
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Alcohol, phenol and ether chapter solvers.

type reimerTiemannSolver struct{}

func (reimerTiemannSolver) Name() string  { return "reimer_tiemann" }
func (reimerTiemannSolver) Topic() string { return TopicAlcohols }

func (reimerTiemannSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("reimer-tiemann", "reimer tiemann") {
		return true
	}
	return t.Contains("phenol") &&
		t.ContainsAny("chloroform", "chcl3") &&
		t.ContainsAny("naoh", "koh", "alkali", "aqueous")
}

func (s reimerTiemannSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Reimer-Tiemann reaction",
		Product:  "Salicylaldehyde (2-hydroxybenzaldehyde)",
		Notes:    "Dichlorocarbene from CHCl3/NaOH attacks the phenoxide ring at the ortho position; hydrolysis of the dichloromethyl group gives the aldehyde.",
		Tip:      "With CCl4 instead of CHCl3 the same setup gives salicylic acid; examiners swap the reagent to test this.",
		Mistake:  "Placing the -CHO para; the intramolecularly favoured ortho isomer is the major product.",
		Steps: []string{
			"CHCl3 + NaOH -> :CCl2 (dichlorocarbene)",
			"The carbene attacks the ortho position of phenoxide",
			"Hydrolysis of -CHCl2 gives the -CHO group",
		},
		TopicTags: []string{TopicAlcohols, TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type kolbeSolver struct{}

func (kolbeSolver) Name() string  { return "kolbe" }
func (kolbeSolver) Topic() string { return TopicAlcohols }

func (kolbeSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("kolbe's reaction", "kolbe reaction", "kolbe-schmitt", "kolbe schmitt") {
		return true
	}
	return t.ContainsAny("phenol", "sodium phenoxide", "phenoxide") &&
		t.ContainsAny("co2", "carbon dioxide") &&
		!t.Contains("electrolysis")
}

func (s kolbeSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Kolbe's reaction",
		Product:  "Salicylic acid (2-hydroxybenzoic acid), after acidification",
		Notes:    "Sodium phenoxide + CO2 under pressure carboxylates the activated ortho position; H+ workup releases the free acid.",
		Tip:      "Phenoxide, not phenol, is the reacting species; the negative oxygen makes the ring nucleophilic enough for CO2.",
		Mistake:  "Starting the mechanism from neutral phenol; the NaOH step is part of the reaction.",
		Steps: []string{
			"Phenol + NaOH -> sodium phenoxide",
			"Phenoxide + CO2 (400 K, 4-7 atm) -> sodium salicylate",
			"Acidification gives salicylic acid",
		},
		TopicTags: []string{TopicAlcohols, TopicAcids},
		NCERT:     ncertIn,
	}
}

type williamsonSolver struct{}

func (williamsonSolver) Name() string  { return "williamson" }
func (williamsonSolver) Topic() string { return TopicAlcohols }

func (williamsonSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("williamson") {
		return true
	}
	return t.ContainsAny("sodium alkoxide", "alkoxide", "sodium ethoxide", "c2h5ona", "ch3ona", "sodium methoxide") &&
		t.ContainsAny("alkyl halide", "haloalkane", "ch3br", "ch3i", "c2h5br", "c2h5cl", "methyl bromide", "ethyl bromide", "methyl iodide")
}

func (s williamsonSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "An ether (R-O-R')"
	if t.ContainsAny("c2h5ona", "sodium ethoxide") && t.ContainsAny("ch3br", "ch3i", "methyl bromide", "methyl iodide") {
		product = "Ethyl methyl ether (C2H5-O-CH3)"
	}
	return &answer.ReactionResult{
		Reaction: "Williamson ether synthesis",
		Product:  product,
		Notes:    "An SN2 attack of the alkoxide on the alkyl halide; works best with primary halides.",
		Tip:      "For an unsymmetrical ether, always pick the less hindered partner as the halide: tertiary halides eliminate instead.",
		Mistake:  "Pairing a tertiary halide with an alkoxide; E2 elimination dominates and the alkene forms.",
		Steps: []string{
			"Prepare the sodium alkoxide from the alcohol and Na",
			"The alkoxide displaces the halide by SN2",
		},
		TopicTags: []string{TopicAlcohols},
		NCERT:     ncertIn,
	}
}

// lucasSolver answers the alcohol-classification test; it is a
// test-identification rule rather than a transformation.
type lucasSolver struct{}

func (lucasSolver) Name() string  { return "lucas" }
func (lucasSolver) Topic() string { return TopicAlcohols }

func (lucasSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("lucas") {
		return true
	}
	return t.ContainsAny("zncl2", "zinc chloride") &&
		t.ContainsAny("hcl", "hydrochloric") &&
		t.Contains("alcohol")
}

func (s lucasSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Lucas test",
		Product:  "3° alcohol: immediate turbidity; 2° alcohol: turbidity in about 5 minutes; 1° alcohol: no turbidity at room temperature",
		Notes:    "Conc. HCl + anhydrous ZnCl2 converts the alcohol to the insoluble alkyl chloride at a rate set by carbocation stability.",
		Tip:      "The observable is cloudiness, and its timing is the whole answer; quote all three cases.",
		Mistake:  "Reporting a colour change; the test is about turbidity, not colour.",
		Steps: []string{
			"Add Lucas reagent (conc. HCl + ZnCl2) to the alcohol",
			"Time the appearance of the cloudy alkyl chloride layer",
		},
		TopicTags: []string{TopicAlcohols, "chemical_tests"},
		NCERT:     ncertIn,
	}
}
