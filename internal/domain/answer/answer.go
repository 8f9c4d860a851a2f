package answer

import (
	"strings"

	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// Answer is the canonical normalized output of a dispatch. Every Answer,
// regardless of which solver produced the underlying result (or whether none
// did), carries all flat fields present and typed: missing data becomes an
// empty string, an empty list, or a nil error pointer — never an omitted key.
//
// Final duplicates the same fields in a nested sections view for structural-
// validator compatibility with older consumers. The asymmetry is deliberate
// and load-bearing: Steps is a sequence in the flat view but one newline-
// joined string in the nested view, both derived from the same source and
// never supplied independently.
type Answer struct {
	FinalAnswer   string      `json:"final_answer"`
	AnswerText    string      `json:"answer"`
	ExamTip       string      `json:"exam_tip"`
	CommonMistake string      `json:"common_mistake"`
	NCERTStatus   string      `json:"ncert_status"`
	Steps         []string    `json:"steps"`
	Err           *string     `json:"error"`
	Final         NestedFinal `json:"final"`

	// Metadata not part of the six-key flat contract; consumed by the
	// renderer and the mastery model, omitted from the flat view.
	Reaction    string   `json:"-"`
	Notes       string   `json:"-"`
	TopicTags   []string `json:"-"`
	Flags       []string `json:"-"`
	Confidence  float64  `json:"-"`
	Clarify     bool     `json:"-"`
}

// NestedFinal is the "final" wrapper around the nested sections view.
type NestedFinal struct {
	Sections NestedSections `json:"sections"`
}

// NestedSections duplicates the flat fields with Steps flattened to a single
// newline-joined string.
type NestedSections struct {
	FinalAnswer   string `json:"final_answer"`
	Answer        string `json:"answer"`
	ExamTip       string `json:"exam_tip"`
	CommonMistake string `json:"common_mistake"`
	NCERTStatus   string `json:"ncert_status"`
	Steps         string `json:"steps"`
}

// finalize fills the nested view from the flat fields and guarantees Steps
// is non-nil. Every constructor funnels through here so the dual contract
// cannot drift.
func (a Answer) finalize() Answer {
	if a.Steps == nil {
		a.Steps = []string{}
	}
	a.Final = NestedFinal{Sections: NestedSections{
		FinalAnswer:   a.FinalAnswer,
		Answer:        a.AnswerText,
		ExamTip:       a.ExamTip,
		CommonMistake: a.CommonMistake,
		NCERTStatus:   a.NCERTStatus,
		Steps:         strings.Join(a.Steps, "\n"),
	}}
	return a
}

// FromResult normalizes a well-formed ReactionResult into an Answer.
func FromResult(r *ReactionResult) Answer {
	if r == nil {
		return NoMatch()
	}
	final := r.Product
	if final == "" {
		final = r.Reaction
	}
	a := Answer{
		FinalAnswer:   final,
		AnswerText:    final,
		ExamTip:       r.Tip,
		CommonMistake: r.Mistake,
		NCERTStatus:   r.NCERT,
		Steps:         append([]string(nil), r.Steps...),
		Reaction:      r.Reaction,
		Notes:         r.Notes,
		TopicTags:     append([]string(nil), r.TopicTags...),
		Flags:         append([]string(nil), r.Flags...),
		Confidence:    r.Confidence,
		Clarify:       r.Clarify,
	}
	return a.finalize()
}

// FromLegacy normalizes a legacy mapping. Field-resolution precedence for
// the primary answer text: final_answer > final > answer > empty string.
// steps may arrive as a sequence, a single string, or be absent.
func FromLegacy(m LegacyMap) Answer {
	a := Answer{
		FinalAnswer:   firstString(m, "final_answer", "final", "answer"),
		ExamTip:       stringAt(m, "exam_tip"),
		CommonMistake: stringAt(m, "common_mistake"),
		NCERTStatus:   stringAt(m, "ncert_status"),
		Steps:         stepsAt(m),
		Reaction:      stringAt(m, "reaction"),
		Notes:         stringAt(m, "notes"),
	}
	a.AnswerText = a.FinalAnswer
	if alt := stringAt(m, "answer"); alt != "" {
		a.AnswerText = alt
	}
	return a.finalize()
}

// NoMatch is the no-solver-fired fallback Answer: empty final_answer and the
// fixed NO_MATCH error sentinel. Never a crash.
func NoMatch() Answer {
	errStr := pkgerrors.SentinelNoMatch
	a := Answer{Err: &errStr}
	return a.finalize()
}

// BadOutput tags a solver return value of unexpected shape. The normalizer's
// job is to make illegal states unrepresentable in the output, so malformed
// input becomes an error-tagged Answer rather than a propagated failure.
func BadOutput() Answer {
	errStr := pkgerrors.SentinelBadSolverType
	a := Answer{Err: &errStr}
	return a.finalize()
}

// Normalize converts any member of the closed solver-output union
// (nil | *ReactionResult | LegacyMap) into the canonical Answer. Anything
// outside the union is captured as a BadOutput answer; this function is the
// single shape boundary and never panics.
func Normalize(v interface{}) Answer {
	switch out := v.(type) {
	case nil:
		return NoMatch()
	case *ReactionResult:
		return FromResult(out)
	case ReactionResult:
		return FromResult(&out)
	case LegacyMap:
		return FromLegacy(out)
	case map[string]interface{}:
		return FromLegacy(LegacyMap(out))
	default:
		return BadOutput()
	}
}

// IsError reports whether the Answer carries a populated error sentinel.
func (a Answer) IsError() bool {
	return a.Err != nil && *a.Err != ""
}

func stringAt(m LegacyMap, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstString(m LegacyMap, keys ...string) string {
	for _, k := range keys {
		if s := stringAt(m, k); s != "" {
			return s
		}
	}
	return ""
}

func stepsAt(m LegacyMap) []string {
	v, ok := m["steps"]
	if !ok || v == nil {
		return []string{}
	}
	switch steps := v.(type) {
	case []string:
		return append([]string(nil), steps...)
	case []interface{}:
		out := make([]string, 0, len(steps))
		for _, s := range steps {
			if str, ok := s.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		if steps == "" {
			return []string{}
		}
		return []string{steps}
	default:
		return []string{}
	}
}
