// Package tutor is the Ask use case: dispatch a question through the engine,
// persist the attempt, fold mastery, and emit the attempt event.
package tutor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/askchem/askchem/internal/application/mastery"
	"github.com/askchem/askchem/internal/dispatch"
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/attempt"
	"github.com/askchem/askchem/internal/domain/question"
	"github.com/askchem/askchem/internal/infrastructure/database/redis"
	"github.com/askchem/askchem/internal/infrastructure/messaging/kafka"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
)

// Engine is the dispatch surface the service drives.
type Engine interface {
	Dispatch(req dispatch.Request) dispatch.Result
}

// EventPublisher emits attempt events; the kafka publisher implements it.
type EventPublisher interface {
	Publish(ctx context.Context, ev kafka.AttemptEvent) error
}

// AttemptMetrics counts persisted attempts by exam mode.
type AttemptMetrics interface {
	RecordAttempt(mode string)
}

// AskRequest is one question from one student.
type AskRequest struct {
	RequestID string
	StudentID string
	Question  string
	Mode      string
	Subject   string
}

// AskResponse carries the engine outcome plus the persistence identifiers.
type AskResponse struct {
	RequestID    string
	AttemptID    uuid.UUID
	Kind         dispatch.ResultKind
	QuestionType string
	SolverName   string
	TopicTags    []string
	Answer       answer.Answer
	Rendered     answer.RenderedResponse
}

// Service wires the dispatch pipeline to the side effects around it. Every
// dependency except the engine is optional; a nil repository, publisher,
// counter, or metrics sink disables that side effect.
type Service struct {
	engine    Engine
	attempts  attempt.Repository
	mastery   *mastery.Service
	publisher EventPublisher
	hits      redis.HitCounter
	metrics   AttemptMetrics
	logger    logging.Logger

	defaultMode    string
	defaultSubject string
}

// Options carries the optional service dependencies.
type Options struct {
	Attempts       attempt.Repository
	Mastery        *mastery.Service
	Publisher      EventPublisher
	Hits           redis.HitCounter
	Metrics        AttemptMetrics
	DefaultMode    string
	DefaultSubject string
}

func NewService(engine Engine, logger logging.Logger, opts Options) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.DefaultMode == "" {
		opts.DefaultMode = string(attempt.ModeBoard)
	}
	if opts.DefaultSubject == "" {
		opts.DefaultSubject = "chemistry"
	}
	return &Service{
		engine:         engine,
		attempts:       opts.Attempts,
		mastery:        opts.Mastery,
		publisher:      opts.Publisher,
		hits:           opts.Hits,
		metrics:        opts.Metrics,
		logger:         logger.Named("app.tutor"),
		defaultMode:    opts.DefaultMode,
		defaultSubject: opts.DefaultSubject,
	}
}

// Ask answers one question. The dispatch outcome is always returned; failures
// in the side effects (persistence, events, counters) are logged and do not
// fail the request.
func (s *Service) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Mode == "" {
		req.Mode = s.defaultMode
	}
	if req.Subject == "" {
		req.Subject = s.defaultSubject
	}

	mode, err := attempt.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	result := s.engine.Dispatch(dispatch.Request{
		Question: req.Question,
		Mode:     req.Mode,
		Subject:  req.Subject,
	})

	s.countHit(ctx, req.Question)

	resp := &AskResponse{
		RequestID:    req.RequestID,
		Kind:         result.Kind,
		QuestionType: string(result.QuestionType),
		SolverName:   result.SolverName,
		TopicTags:    result.TopicTags,
		Answer:       result.Answer,
		Rendered:     result.Rendered,
	}

	a := s.buildAttempt(req, mode, result)
	resp.AttemptID = a.ID

	if s.attempts != nil {
		if err := s.attempts.Save(ctx, a); err != nil {
			s.logger.Error("failed to persist attempt",
				logging.String("request_id", req.RequestID), logging.Err(err))
		} else if s.metrics != nil {
			s.metrics.RecordAttempt(string(mode))
		}
	}

	if s.mastery != nil {
		if err := s.mastery.Record(ctx, a.StudentID, a.TopicTags, a.Status); err != nil {
			s.logger.Error("failed to record mastery",
				logging.String("request_id", req.RequestID), logging.Err(err))
		}
	}

	s.publish(ctx, a)

	return resp, nil
}

func (s *Service) buildAttempt(req AskRequest, mode attempt.ExamMode, result dispatch.Result) *attempt.Attempt {
	a := &attempt.Attempt{
		ID:           uuid.New(),
		StudentID:    req.StudentID,
		Question:     req.Question,
		QuestionType: string(result.QuestionType),
		SolverName:   result.SolverName,
		TopicTags:    result.TopicTags,
		ExplainTags:  result.Answer.Flags,
		Status:       attempt.Status(result.Kind),
		Mode:         mode,
		Subject:      req.Subject,
		Confidence:   result.Answer.Confidence,
		CreatedAt:    time.Now().UTC(),
	}
	if result.Answer.Err != nil {
		a.ErrorKind = *result.Answer.Err
	}
	if a.ErrorKind == "" && result.Kind == dispatch.KindOutOfDomain {
		a.ErrorKind = "OUT_OF_DOMAIN"
	}
	return a
}

func (s *Service) publish(ctx context.Context, a *attempt.Attempt) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, kafka.AttemptEvent{
		AttemptID:    a.ID.String(),
		StudentID:    a.StudentID,
		Question:     a.Question,
		QuestionType: a.QuestionType,
		SolverName:   a.SolverName,
		TopicTags:    a.TopicTags,
		Status:       string(a.Status),
		ErrorKind:    a.ErrorKind,
		Mode:         string(a.Mode),
		Subject:      a.Subject,
		Confidence:   a.Confidence,
		OccurredAt:   a.CreatedAt,
	})
	if err != nil {
		s.logger.Error("failed to publish attempt event",
			logging.String("attempt_id", a.ID.String()), logging.Err(err))
	}
}

// countHit records one hit against the question's normalized form so
// popularity survives spelling and unicode variants.
func (s *Service) countHit(ctx context.Context, q string) {
	if s.hits == nil {
		return
	}
	if _, err := s.hits.Hit(ctx, QuestionKey(q)); err != nil {
		s.logger.Warn("failed to count question hit", logging.Err(err))
	}
}

// QuestionKey derives a stable counter key from a question's normalized text.
func QuestionKey(q string) string {
	sum := sha256.Sum256([]byte(question.Normalize(q).String()))
	return "q:" + hex.EncodeToString(sum[:8])
}
