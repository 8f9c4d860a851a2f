package solver

import (
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Guard intercepts a fixed set of exam-critical under-specified question
// patterns before any solver runs. A guard hit terminates dispatch with a
// PARTIAL clarification response; it takes priority over every solver even
// when one could technically produce an answer, because guessing the
// condition silently is exactly the exam mistake the engine exists to catch.
type Guard struct {
	rules []guardRule
}

type guardRule struct {
	name string
	// applies reports whether the question mentions the reagent whose
	// behaviour splits on a condition qualifier.
	applies func(t question.NormalizedText) bool
	// specified reports whether the question already names a qualifier.
	specified func(t question.NormalizedText) bool
	result    answer.ReactionResult
}

// NewGuard builds the guard with its fixed rule set.
func NewGuard() *Guard {
	return &Guard{rules: []guardRule{
		{
			name: "kmno4_condition",
			applies: func(t question.NormalizedText) bool {
				return t.ContainsAny("kmno4", "potassium permanganate", "baeyer's reagent", "baeyers reagent") &&
					t.ContainsAny("alkene", "propene", "ethene", "butene", "toluene", "methylbenzene", "alkyl benzene", "alkylbenzene", "double bond", "c=c")
			},
			specified: func(t question.NormalizedText) bool {
				return t.ContainsAny("cold", "dilute", "dil.", "dil ", "alkaline", "concentrated", "acidified", "acidic") ||
					t.HasAnyToken("hot", "conc")
			},
			result: answer.ReactionResult{
				Reaction: "Oxidation with KMnO4",
				Product:  "Please specify the KMnO4 condition: cold dilute alkaline KMnO4 (Baeyer's reagent) gives the cis-diol, while hot concentrated/acidified KMnO4 cleaves the C=C (or oxidizes a side chain to -COOH).",
				Notes:    "The two conditions give entirely different products, so the condition must be stated before the product can be named.",
				Tip:      "In board exams, writing the diol for hot KMnO4 (or cleavage products for cold) scores zero for the product step.",
				Clarify:  true,
				Flags:    []string{"ambiguous_conditions", "kmno4"},
				NCERT:    ncertIn,
			},
		},
		{
			name: "koh_medium",
			applies: func(t question.NormalizedText) bool {
				if t.ContainsAny("phthalimide", "chloroform", "chcl3", "sulfonyl", "sulphonyl") {
					// KOH appears as a co-reagent in Gabriel, carbylamine and
					// Hinsberg questions where the medium is not the point.
					return false
				}
				return t.Contains("koh") &&
					t.ContainsAny("chloride", "bromide", "iodide", "halide", "chloro", "bromo", "iodo", "haloalkane", "alkyl halide")
			},
			specified: func(t question.NormalizedText) bool {
				return t.ContainsAny("alcoholic", "ethanolic", "aqueous", "water") ||
					t.HasAnyToken("alc", "aq")
			},
			result: answer.ReactionResult{
				Reaction: "Reaction of haloalkane with KOH",
				Product:  "Please specify the medium: aqueous KOH gives substitution to the alcohol, while alcoholic KOH gives elimination to the alkene.",
				Notes:    "Same reagent, opposite outcome; the medium decides substitution versus elimination.",
				Tip:      "aq. KOH -> alcohol (substitution); alc. KOH -> alkene (elimination). Examiners test exactly this distinction.",
				Clarify:  true,
				Flags:    []string{"ambiguous_conditions", "koh_medium"},
				NCERT:    ncertIn,
			},
		},
	}}
}

// Intercept returns the clarification result of the first matching rule,
// or nil when no known ambiguity pattern applies. Rule order is fixed, so
// the response for a doubly ambiguous question is deterministic.
func (g *Guard) Intercept(t question.NormalizedText) *answer.ReactionResult {
	for _, r := range g.rules {
		if r.applies(t) && !r.specified(t) {
			res := r.result
			return &res
		}
	}
	return nil
}
