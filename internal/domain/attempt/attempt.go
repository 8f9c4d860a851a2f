// Package attempt holds the persistence-side domain model: one Attempt per
// answered question, and per-topic Mastery accumulated from attempt outcomes.
package attempt

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// ExamMode is the preparation track an attempt was made under.
type ExamMode string

const (
	ModeBoard ExamMode = "BOARD"
	ModeNEET  ExamMode = "NEET"
	ModeJEE   ExamMode = "JEE"
)

// Valid reports whether m is a known exam mode.
func (m ExamMode) Valid() bool {
	switch m {
	case ModeBoard, ModeNEET, ModeJEE:
		return true
	}
	return false
}

// ParseMode validates and normalizes a mode string; empty defaults to BOARD.
func ParseMode(s string) (ExamMode, error) {
	if s == "" {
		return ModeBoard, nil
	}
	m := ExamMode(s)
	if !m.Valid() {
		return "", pkgerrors.Newf(pkgerrors.ErrCodeInvalidExamMode, "unknown exam mode %q", s)
	}
	return m, nil
}

// Status is the terminal outcome of a dispatched question.
type Status string

const (
	StatusAnswered      Status = "answered"
	StatusClarification Status = "clarification"
	StatusNoMatch       Status = "no_match"
	StatusOutOfDomain   Status = "out_of_domain"
)

// Attempt records a single question put to the engine and how it resolved.
type Attempt struct {
	ID           uuid.UUID `json:"id"`
	StudentID    string    `json:"student_id"`
	Question     string    `json:"question"`
	QuestionType string    `json:"question_type"`
	SolverName   string    `json:"solver_name,omitempty"`
	TopicTags    []string  `json:"topic_tags,omitempty"`
	ExplainTags  []string  `json:"explain_tags,omitempty"`
	Status       Status    `json:"status"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	Mode         ExamMode  `json:"mode"`
	Subject      string    `json:"subject"`
	Confidence   float64   `json:"confidence"`
	CreatedAt    time.Time `json:"created_at"`
}

// ErrorKindCount is one bucket of the per-student error histogram.
type ErrorKindCount struct {
	ErrorKind string `json:"error_kind"`
	Count     int64  `json:"count"`
}

// Repository persists attempts.
type Repository interface {
	Save(ctx context.Context, a *Attempt) error
	FindByID(ctx context.Context, id uuid.UUID) (*Attempt, error)
	ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]*Attempt, error)
	ErrorKindHistogram(ctx context.Context, studentID string) ([]ErrorKindCount, error)
}

// Mastery is the accumulated proficiency of one student on one topic.
type Mastery struct {
	StudentID      string    `json:"student_id"`
	Topic          string    `json:"topic"`
	Attempts       int64     `json:"attempts"`
	Answered       int64     `json:"answered"`
	Clarifications int64     `json:"clarifications"`
	NoMatches      int64     `json:"no_matches"`
	Score          float64   `json:"score"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Apply folds one attempt outcome into the mastery counters and recomputes
// the score as the answered fraction.
func (m *Mastery) Apply(status Status) {
	m.Attempts++
	switch status {
	case StatusAnswered:
		m.Answered++
	case StatusClarification:
		m.Clarifications++
	case StatusNoMatch:
		m.NoMatches++
	}
	if m.Attempts > 0 {
		m.Score = float64(m.Answered) / float64(m.Attempts)
	}
}

// MasteryRepository persists per-topic mastery rows.
type MasteryRepository interface {
	// Record folds one outcome into the (student, topic) row, creating it on
	// first sight.
	Record(ctx context.Context, studentID, topic string, status Status) error
	Get(ctx context.Context, studentID, topic string) (*Mastery, error)
	ListByStudent(ctx context.Context, studentID string) ([]*Mastery, error)
}
