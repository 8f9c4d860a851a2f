package answer

import (
	"fmt"
	"strings"
)

// requiredSections lists the five envelope sections in validation order.
// The validator is fail-fast: it reports the first violation, named exactly,
// and never accumulates.
var requiredSections = []string{"understanding", "concept", "steps", "final_answer", "exam_tip"}

// ValidateRendered checks the structural contract of an outgoing envelope:
// the sections container, then each required key, then non-blank-after-trim
// values. A violation is a programming-contract failure inside the pipeline
// — every successful dispatch must produce a valid envelope — so callers log
// it loudly rather than handing it to end users. Pure; no side effects.
func ValidateRendered(r RenderedResponse) (bool, string) {
	values := map[string]string{
		"understanding": r.Sections.Understanding,
		"concept":       r.Sections.Concept,
		"steps":         r.Sections.Steps,
		"final_answer":  r.Sections.FinalAnswer,
		"exam_tip":      r.Sections.ExamTip,
	}

	// Presence and string-typing are guaranteed by the struct shape; the
	// blank check is the remaining obligation.
	for _, key := range requiredSections {
		if strings.TrimSpace(values[key]) == "" {
			return false, fmt.Sprintf("section %q must be a non-blank string", key)
		}
	}
	return true, ""
}

// ValidateSectionMap is the map-shaped twin of ValidateRendered for callers
// that hold an envelope decoded from JSON rather than the typed struct, such
// as API clients and stored-payload checks. Inside the engine every producer
// holds the struct, so the pipeline itself validates through ValidateRendered.
// Checks, in order: container present, each required key present and a
// string, each value non-blank.
func ValidateSectionMap(sections map[string]interface{}) (bool, string) {
	if sections == nil {
		return false, "response missing sections container"
	}
	for _, key := range requiredSections {
		v, ok := sections[key]
		if !ok {
			return false, fmt.Sprintf("sections missing required key %q", key)
		}
		s, ok := v.(string)
		if !ok {
			return false, fmt.Sprintf("section %q must be a string", key)
		}
		if strings.TrimSpace(s) == "" {
			return false, fmt.Sprintf("section %q must be a non-blank string", key)
		}
	}
	return true, ""
}
