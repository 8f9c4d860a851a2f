package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullEnvelope() RenderedResponse {
	return RenderedResponse{
		Decision:    DecisionFull,
		Assumptions: []string{},
		Sections: Sections{
			Understanding: "Aniline + NaNO2/HCl at 0-5°C [reaction]",
			Concept:       "Diazotization",
			Steps:         "Protonate nitrous acid\nAttack by aniline nitrogen",
			FinalAnswer:   "Benzene diazonium chloride",
			ExamTip:       "Keep the temperature below 5°C.",
		},
	}
}

func TestValidateRenderedAcceptsFullEnvelope(t *testing.T) {
	ok, msg := ValidateRendered(fullEnvelope())
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestValidateRenderedFailFastNamesSection(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RenderedResponse)
		wantMsg string
	}{
		{"blank understanding", func(r *RenderedResponse) { r.Sections.Understanding = "" }, `section "understanding" must be a non-blank string`},
		{"whitespace concept", func(r *RenderedResponse) { r.Sections.Concept = "   " }, `section "concept" must be a non-blank string`},
		{"blank steps", func(r *RenderedResponse) { r.Sections.Steps = "\t\n" }, `section "steps" must be a non-blank string`},
		{"blank final_answer", func(r *RenderedResponse) { r.Sections.FinalAnswer = "" }, `section "final_answer" must be a non-blank string`},
		{"blank exam_tip", func(r *RenderedResponse) { r.Sections.ExamTip = "" }, `section "exam_tip" must be a non-blank string`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := fullEnvelope()
			tt.mutate(&env)
			ok, msg := ValidateRendered(env)
			assert.False(t, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestValidateRenderedReportsFirstViolationOnly(t *testing.T) {
	env := fullEnvelope()
	env.Sections.Understanding = ""
	env.Sections.ExamTip = ""
	ok, msg := ValidateRendered(env)
	assert.False(t, ok)
	assert.Equal(t, `section "understanding" must be a non-blank string`, msg)
}

func TestValidateSectionMap(t *testing.T) {
	full := map[string]interface{}{
		"understanding": "u", "concept": "c", "steps": "s",
		"final_answer": "f", "exam_tip": "e",
	}
	ok, msg := ValidateSectionMap(full)
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = ValidateSectionMap(nil)
	assert.False(t, ok)
	assert.Equal(t, "response missing sections container", msg)

	missing := map[string]interface{}{
		"understanding": "u", "concept": "c", "steps": "s", "exam_tip": "e",
	}
	ok, msg = ValidateSectionMap(missing)
	assert.False(t, ok)
	assert.Equal(t, `sections missing required key "final_answer"`, msg)

	wrongType := map[string]interface{}{
		"understanding": "u", "concept": 3, "steps": "s",
		"final_answer": "f", "exam_tip": "e",
	}
	ok, msg = ValidateSectionMap(wrongType)
	assert.False(t, ok)
	assert.Equal(t, `section "concept" must be a string`, msg)
}

func TestRenderDefaultsKeepSectionsNonBlank(t *testing.T) {
	a := NoMatch()
	env := Render(RenderInput{Question: ""}, a)
	ok, msg := ValidateRendered(env)
	assert.True(t, ok, msg)
	assert.Equal(t, DecisionFull, env.Decision)
	assert.Equal(t, "(empty question)", env.Sections.Understanding)
}

func TestRenderClarificationIsPartial(t *testing.T) {
	a := FromResult(&ReactionResult{
		Reaction: "Halogenation of alkenes",
		Product:  "Please specify the solvent (CCl4 or H2O) to decide the product.",
		Clarify:  true,
		Flags:    []string{"clarification"},
	})
	env := Render(RenderInput{Question: "Propene + Br2", QuestionType: "reaction"}, a)
	assert.Equal(t, DecisionPartial, env.Decision)
	assert.Contains(t, env.Assumptions, "clarification")
	ok, _ := ValidateRendered(env)
	assert.True(t, ok)
}

func TestRenderCarriesConfidenceAssumption(t *testing.T) {
	a := FromResult(&ReactionResult{
		Reaction:   "Markovnikov addition",
		Product:    "2-bromopropane",
		Flags:      []string{"markovnikov"},
		Confidence: 0.98,
	})
	env := Render(RenderInput{Question: "Alkene reacts with HBr"}, a)
	assert.Contains(t, env.Assumptions, "markovnikov")
	assert.Contains(t, env.Assumptions, "confidence=0.98")
}
