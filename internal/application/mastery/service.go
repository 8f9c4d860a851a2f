// Package mastery accumulates per-topic proficiency from attempt outcomes
// and serves student progress overviews.
package mastery

import (
	"context"

	"github.com/askchem/askchem/internal/domain/attempt"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// Service folds attempt outcomes into mastery rows and reads them back.
type Service struct {
	masteries attempt.MasteryRepository
	attempts  attempt.Repository
	logger    logging.Logger
}

func NewService(masteries attempt.MasteryRepository, attempts attempt.Repository, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		masteries: masteries,
		attempts:  attempts,
		logger:    logger.Named("app.mastery"),
	}
}

// Record folds one outcome into every topic the attempt touched. A failure on
// one topic does not stop the others; the first error is returned.
func (s *Service) Record(ctx context.Context, studentID string, topics []string, status attempt.Status) error {
	if studentID == "" || len(topics) == 0 {
		return nil
	}

	var firstErr error
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		if err := s.masteries.Record(ctx, studentID, topic, status); err != nil {
			s.logger.Error("failed to record topic mastery",
				logging.String("student_id", studentID),
				logging.String("topic", topic),
				logging.Err(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Overview is a student's progress summary.
type Overview struct {
	StudentID  string                   `json:"student_id"`
	Topics     []*attempt.Mastery       `json:"topics"`
	ErrorKinds []attempt.ErrorKindCount `json:"error_kinds"`
}

// Overview returns per-topic mastery (weakest first) and the student's
// error-kind histogram.
func (s *Service) Overview(ctx context.Context, studentID string) (*Overview, error) {
	if studentID == "" {
		return nil, pkgerrors.New(pkgerrors.ErrCodeValidation, "student id is required")
	}

	topics, err := s.masteries.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	kinds, err := s.attempts.ErrorKindHistogram(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []*attempt.Mastery{}
	}
	if kinds == nil {
		kinds = []attempt.ErrorKindCount{}
	}
	return &Overview{StudentID: studentID, Topics: topics, ErrorKinds: kinds}, nil
}
