// Package answer holds the output-side domain model: the ReactionResult a
// solver produces, the canonical normalized Answer, the rendered response
// envelope, and the structure validator that guards the boundary.
package answer

// ReactionResult is the record one firing solver produces. It is created
// once per solver invocation, consumed immediately by the normalizer, and
// discarded; it is never cached or persisted.
//
// Product may itself be a clarification prompt when the solver detected
// applicability but the question under-specifies a required condition.
// That is a deliberate convention: ambiguity surfaces as a degenerate but
// valid answer, never as nil and never as an error, so control cannot fall
// through to a wrong lower-priority solver.
type ReactionResult struct {
	// Reaction is the human-readable name of the transformation,
	// e.g. "Sandmeyer reaction".
	Reaction string

	// Product describes the outcome. Free text; may embed alternative
	// phrasings and formula notations, or a clarification prompt.
	Product string

	// Notes carries caveats, exam traps, and mechanism hints.
	Notes string

	// Tip is an optional exam tip. Not guaranteed to survive normalization
	// unless non-empty, in which case it maps to Answer.ExamTip.
	Tip string

	// Mistake is an optional common-mistake warning for the topic.
	Mistake string

	// NCERT marks whether the reaction is in the NCERT syllabus scope
	// ("in_syllabus", "beyond_syllabus", or empty when unstated).
	NCERT string

	// Steps is the optional ordered working shown to the student.
	Steps []string

	// TopicTags labels the attempt for mastery bookkeeping downstream.
	TopicTags []string

	// Flags carries machine-readable markers ("markovnikov",
	// "anti_markovnikov", "clarification", ...) surfaced as assumptions.
	Flags []string

	// Confidence in [0,1]; zero means the solver did not state one.
	Confidence float64

	// Clarify marks the result as a clarification request rather than a
	// chemical answer; the renderer downgrades the decision to PARTIAL.
	Clarify bool
}

// LegacyMap is the loosely-shaped mapping older solver implementations
// returned before ReactionResult existed. The normalizer still accepts it so
// that ports of old rule tables keep working; new solvers must not use it.
type LegacyMap map[string]interface{}
