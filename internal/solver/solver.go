// Package solver contains the detector/solver catalog of the engine: one
// small pattern-matching unit per named reaction or chemical test of the
// exam syllabus, plus the ambiguity guard and the ordered priority registry
// the dispatch pipeline trials them through.
package solver

import (
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Solver is the contract every catalog entry satisfies.
//
// Detect is a pure, total predicate over the normalized text; it must never
// panic for any input including empty. Solve returns nil to signal "not
// mine, try the next candidate". When a solver is applicable but the
// question is under-specified, Solve returns a ReactionResult whose Product
// is the clarification prompt with Clarify set, never nil and never an
// error: ambiguity is a valid low-confidence answer, not a failure.
type Solver interface {
	Name() string
	Topic() string
	Detect(t question.NormalizedText) bool
	Solve(t question.NormalizedText) *answer.ReactionResult
}

// Topic tags shared by solvers and the mastery model.
const (
	TopicAmines      = "amines"
	TopicArenes      = "arenes"
	TopicAlcohols    = "alcohols_phenols_ethers"
	TopicCarbonyl    = "aldehydes_ketones"
	TopicAcids       = "carboxylic_acids"
	TopicHaloalkanes = "haloalkanes_haloarenes"
	TopicAlkenes     = "alkenes_alkynes"
)

// NCERT syllabus status values carried on results.
const (
	ncertIn = "in_syllabus"
)
