package answer

import (
	"fmt"
	"strings"
)

// Decision labels how complete the rendered response is.
const (
	DecisionFull    = "FULL"
	DecisionPartial = "PARTIAL"
)

// Sections is the five-key section mapping of the outgoing envelope. The
// structure validator requires every value to be a non-blank string.
type Sections struct {
	Understanding string `json:"understanding"`
	Concept       string `json:"concept"`
	Steps         string `json:"steps"`
	FinalAnswer   string `json:"final_answer"`
	ExamTip       string `json:"exam_tip"`
}

// RenderedResponse is the outer envelope handed to the caller. It is an
// immutable value object; the caller owns it after the boundary.
type RenderedResponse struct {
	Decision    string   `json:"decision"`
	Assumptions []string `json:"assumptions"`
	Sections    Sections `json:"sections"`
}

// RenderInput carries the request-scoped context the renderer folds into the
// understanding section.
type RenderInput struct {
	Question     string
	QuestionType string
	Mode         string
	Subject      string
}

// Defaults used to keep every section non-blank when the underlying answer
// left a field empty. The validator treats blank sections as a hard failure,
// so default-filling here is part of the rendering contract, not cosmetics.
const (
	defaultConcept = "General organic chemistry"
	defaultTip     = "Revise the NCERT reaction summary for this topic before the exam."
	defaultAnswer  = "I don't have a rule for this question yet. Try rephrasing with the reagents and conditions."
)

// Render produces the outgoing envelope for a normalized Answer.
//
// Decision is PARTIAL when the answer is a clarification request, FULL
// otherwise (including the no-match fallback, which is a complete statement
// of "no rule matched"). Assumptions carry the answer's machine-readable
// flags plus a confidence note when the solver stated one.
func Render(in RenderInput, a Answer) RenderedResponse {
	decision := DecisionFull
	if a.Clarify {
		decision = DecisionPartial
	}

	assumptions := append([]string(nil), a.Flags...)
	if a.Confidence > 0 {
		assumptions = append(assumptions, fmt.Sprintf("confidence=%.2f", a.Confidence))
	}
	if assumptions == nil {
		assumptions = []string{}
	}

	understanding := strings.TrimSpace(in.Question)
	if understanding == "" {
		understanding = "(empty question)"
	}
	if in.QuestionType != "" && in.QuestionType != "unknown" {
		understanding = fmt.Sprintf("%s [%s]", understanding, in.QuestionType)
	}

	concept := a.Reaction
	if strings.TrimSpace(concept) == "" {
		concept = defaultConcept
	}

	steps := strings.Join(a.Steps, "\n")
	if strings.TrimSpace(steps) == "" {
		if strings.TrimSpace(a.Notes) != "" {
			steps = a.Notes
		} else {
			steps = "Apply the rule directly; no intermediate steps required."
		}
	}

	finalAnswer := a.FinalAnswer
	if strings.TrimSpace(finalAnswer) == "" {
		finalAnswer = defaultAnswer
	}

	tip := a.ExamTip
	if strings.TrimSpace(tip) == "" {
		tip = defaultTip
	}

	return RenderedResponse{
		Decision:    decision,
		Assumptions: assumptions,
		Sections: Sections{
			Understanding: understanding,
			Concept:       concept,
			Steps:         steps,
			FinalAnswer:   finalAnswer,
			ExamTip:       tip,
		},
	}
}
