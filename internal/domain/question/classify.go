package question

// QuestionType is the advisory secondary classification of a question. It
// labels telemetry and response metadata; it never gates dispatch, so a
// misclassification here cannot change which solver answers.
type QuestionType string

const (
	TypeReaction           QuestionType = "reaction"
	TypeOrderRanking       QuestionType = "order_ranking"
	TypeIUPAC              QuestionType = "iupac"
	TypeTestIdentification QuestionType = "test_identification"
	TypeMechanism          QuestionType = "mechanism"
	TypeConcept            QuestionType = "concept"
	TypeUnknown            QuestionType = "unknown"
)

// classifyRule pairs a question type with its folded-form trigger phrases.
// Rules are evaluated in order; the first hit wins, so the more specific
// phrasings sit above the broad reaction cues.
type classifyRule struct {
	qtype    QuestionType
	triggers []string
}

var classifyRules = []classifyRule{
	{TypeOrderRanking, []string{
		"increasing order", "decreasing order", "arrange the", "arrange in",
		"rank the", "correct order of",
	}},
	{TypeIUPAC, []string{
		"iupac name", "iupac nomenclature", "name the following compound",
	}},
	{TypeTestIdentification, []string{
		"distinguish between", "how will you distinguish", "which test",
		"identify the compound", "chemical test", "test to identify",
	}},
	{TypeMechanism, []string{
		"mechanism", "sn1", "sn2", "e1 ", "e2 ", "rate determining",
		"carbocation", "intermediate",
	}},
	{TypeConcept, []string{
		"why ", "why?", "explain", "define", "what is meant by", "reason for",
	}},
	{TypeReaction, []string{
		"->", "reacts with", "treated with", "reaction of", "on heating",
		"in presence of", "product of", "gives", "undergoes", " + ",
	}},
}

// ClassifyType returns the advisory type of t. Deterministic: fixed rule
// order, first match wins, TypeUnknown when nothing matches.
func ClassifyType(t NormalizedText) QuestionType {
	if t.IsEmpty() {
		return TypeUnknown
	}
	for _, r := range classifyRules {
		for _, trig := range r.triggers {
			if t.Contains(trig) {
				return r.qtype
			}
		}
	}
	return TypeUnknown
}
