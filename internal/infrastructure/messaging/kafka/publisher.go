// Package kafka publishes attempt events for downstream analytics. When no
// brokers are configured the publisher runs disabled and every publish is a
// no-op, so the engine works standalone.
package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/askchem/askchem/internal/config"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

var ErrPublisherClosed = pkgerrors.New(pkgerrors.ErrCodeMessagingError, "publisher is closed")

// AttemptEvent is the wire payload emitted once per recorded attempt.
type AttemptEvent struct {
	EventID      string    `json:"event_id"`
	AttemptID    string    `json:"attempt_id"`
	StudentID    string    `json:"student_id"`
	Question     string    `json:"question"`
	QuestionType string    `json:"question_type"`
	SolverName   string    `json:"solver_name"`
	TopicTags    []string  `json:"topic_tags"`
	Status       string    `json:"status"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	Mode         string    `json:"mode"`
	Subject      string    `json:"subject"`
	Confidence   float64   `json:"confidence"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// writer abstracts kafka.Writer for tests.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublishMetrics receives the outcome of every publish call.
type PublishMetrics interface {
	RecordEventPublish(topic, outcome string)
}

// Publisher sends attempt events to a single topic.
type Publisher struct {
	writer  writer
	topic   string
	logger  logging.Logger
	metrics PublishMetrics
	closed  atomic.Bool
}

// NewPublisher builds a Publisher from cfg. With no brokers configured the
// returned publisher is disabled: Enabled reports false and Publish drops
// events silently.
func NewPublisher(cfg config.KafkaConfig, logger logging.Logger, metrics PublishMetrics) *Publisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.Named("infra.kafka")

	p := &Publisher{
		topic:   cfg.AttemptTopic,
		logger:  logger,
		metrics: metrics,
	}
	if len(cfg.Brokers) == 0 {
		logger.Info("kafka disabled, attempt events will not be published")
		return p
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	retries := cfg.ProducerRetries
	if retries < 0 {
		retries = 0
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AttemptTopic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  retries + 1,
		BatchSize:    batchSize,
		BatchTimeout: time.Second,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	logger.Info("kafka publisher ready", logging.String("topic", cfg.AttemptTopic))
	return p
}

// newPublisherWithWriter wires a custom writer; used by tests.
func newPublisherWithWriter(w writer, topic string, logger logging.Logger, metrics PublishMetrics) *Publisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Publisher{writer: w, topic: topic, logger: logger, metrics: metrics}
}

// Enabled reports whether events actually leave the process.
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// Publish sends one attempt event, keyed by student id so a student's events
// stay ordered within a partition. Missing event ids and timestamps are
// filled in.
func (p *Publisher) Publish(ctx context.Context, ev AttemptEvent) error {
	if !p.Enabled() {
		return nil
	}
	if p.closed.Load() {
		return ErrPublisherClosed
	}

	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "failed to encode attempt event")
	}

	msg := kafka.Message{
		Key:   []byte(ev.StudentID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.EventID)},
			{Key: "event_type", Value: []byte("attempt.recorded")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.record("error")
		p.logger.Error("failed to publish attempt event",
			logging.String("event_id", ev.EventID), logging.Err(err))
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeMessagingError, "failed to publish attempt event")
	}

	p.record("ok")
	p.logger.Debug("attempt event published",
		logging.String("event_id", ev.EventID),
		logging.String("student_id", ev.StudentID))
	return nil
}

func (p *Publisher) record(outcome string) {
	if p.metrics != nil {
		p.metrics.RecordEventPublish(p.topic, outcome)
	}
}

// Close flushes and shuts down the writer. Safe to call more than once and
// on a disabled publisher.
func (p *Publisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	if err != nil {
		p.logger.Error("failed to close kafka publisher", logging.Err(err))
		return err
	}
	p.logger.Info("kafka publisher closed")
	return nil
}
