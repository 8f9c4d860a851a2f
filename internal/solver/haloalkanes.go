package solver

import (
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Haloalkane/haloarene chapter solvers.

// benzyneSolver answers nucleophilic substitution of haloarenes under the
// forcing NaNH2/liquid-NH3 conditions.
type benzyneSolver struct{}

func (benzyneSolver) Name() string  { return "benzyne" }
func (benzyneSolver) Topic() string { return TopicHaloalkanes }

func (benzyneSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("benzyne") {
		return true
	}
	return t.ContainsAny("chlorobenzene", "bromobenzene", "c6h5cl", "c6h5br", "haloarene", "aryl halide") &&
		t.ContainsAny("nanh2", "sodamide", "sodium amide", "amide ion")
}

func (s benzyneSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Benzyne mechanism (elimination-addition)",
		Product:  "Aniline (C6H5NH2)",
		Notes:    "NaNH2 in liquid NH3 removes HX to form the benzyne intermediate, which NH3/NH2- then adds across.",
		Tip:      "With substituted haloarenes the addition step gives both cine and normal products; that regio outcome is the benzyne fingerprint.",
		Mistake:  "Drawing a direct SN2 on the aryl carbon; haloarenes do not undergo it, the benzyne path is the whole point.",
		Steps: []string{
			"NH2- removes the ortho hydrogen and X- leaves, forming benzyne",
			"NH3/NH2- adds across the strained triple bond",
			"Protonation gives aniline",
		},
		TopicTags: []string{TopicHaloalkanes, TopicAmines, "mechanism"},
		NCERT:     ncertIn,
	}
}

type wurtzSolver struct{}

func (wurtzSolver) Name() string  { return "wurtz" }
func (wurtzSolver) Topic() string { return TopicHaloalkanes }

func (wurtzSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("wurtz", "fittig") {
		return true
	}
	return t.ContainsAny("alkyl halide", "haloalkane", "ch3br", "c2h5br", "ch3i") &&
		t.ContainsAny("sodium in dry ether", "na in dry ether", "na/dry ether", "na / dry ether", "sodium metal") &&
		t.ContainsAny("dry ether", "ether")
}

func (s wurtzSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	reaction := "Wurtz reaction"
	product := "The symmetrical alkane R-R (chain doubled)"
	switch {
	case t.Contains("wurtz-fittig") || t.Contains("wurtz fittig"):
		reaction = "Wurtz-Fittig reaction"
		product = "The alkylarene from coupling an aryl halide with an alkyl halide"
	case t.Contains("fittig"):
		reaction = "Fittig reaction"
		product = "Biphenyl (coupling of two aryl halides)"
	case t.ContainsAny("ch3br", "ch3i", "methyl bromide", "methyl iodide"):
		product = "Ethane (CH3-CH3)"
	case t.ContainsAny("c2h5br", "ethyl bromide"):
		product = "n-Butane (C2H5-C2H5)"
	}
	return &answer.ReactionResult{
		Reaction: reaction,
		Product:  product,
		Notes:    "Two halide molecules couple over sodium in dry ether; useful only for symmetrical products since mixed halides give all three alkanes.",
		Tip:      "Wurtz cannot make odd chains cleanly from mixed halides; that limitation is a standard one-mark question.",
		Mistake:  "Using it to prepare methane; there is no one-carbon coupling partner.",
		Steps: []string{
			"2 R-X + 2 Na in dry ether",
			"Coupling gives R-R and 2 NaX",
		},
		TopicTags: []string{TopicHaloalkanes},
		NCERT:     ncertIn,
	}
}

type finkelsteinSolver struct{}

func (finkelsteinSolver) Name() string  { return "finkelstein" }
func (finkelsteinSolver) Topic() string { return TopicHaloalkanes }

func (finkelsteinSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("finkelstein") {
		return true
	}
	return (t.HasToken("nai") || t.Contains("sodium iodide")) &&
		t.ContainsAny("acetone", "dry acetone", "propanone") &&
		t.ContainsAny("chloride", "bromide", "chloro", "bromo", "alkyl halide", "haloalkane")
}

func (s finkelsteinSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Finkelstein reaction",
		Product:  "The alkyl iodide (halide exchange: R-Cl/R-Br -> R-I)",
		Notes:    "NaI is soluble in dry acetone while NaCl/NaBr are not; their precipitation drives the exchange forward.",
		Tip:      "The solubility argument is the expected explanation, not just the equation.",
		Mistake:  "Running it in water; the equilibrium only moves because the by-product salt precipitates from acetone.",
		Steps: []string{
			"R-X + NaI in dry acetone",
			"NaX precipitates, leaving R-I in solution",
		},
		TopicTags: []string{TopicHaloalkanes},
		NCERT:     ncertIn,
	}
}

type swartsSolver struct{}

func (swartsSolver) Name() string  { return "swarts" }
func (swartsSolver) Topic() string { return TopicHaloalkanes }

func (swartsSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("swarts") {
		return true
	}
	return t.ContainsAny("agf", "hg2f2", "cof2", "sbf3", "metallic fluoride", "silver fluoride") &&
		t.ContainsAny("chloride", "bromide", "chloro", "bromo", "alkyl halide", "haloalkane", "ch3br", "ch3cl")
}

func (s swartsSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The alkyl fluoride (R-F)"
	if t.ContainsAny("ch3br", "methyl bromide", "ch3cl", "methyl chloride") {
		product = "Fluoromethane (CH3F)"
	}
	return &answer.ReactionResult{
		Reaction: "Swarts reaction",
		Product:  product,
		Notes:    "Heating the alkyl chloride/bromide with a heavy-metal fluoride (AgF, Hg2F2, CoF2, SbF3) exchanges the halogen for fluorine.",
		Tip:      "Swarts is the named route to alkyl fluorides; direct fluorination is too violent to use.",
		Steps: []string{
			"Heat R-Cl or R-Br with the metallic fluoride",
			"Halide exchange gives R-F",
		},
		TopicTags: []string{TopicHaloalkanes},
		NCERT:     ncertIn,
	}
}
