package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/askchem/askchem/internal/config"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// EventHandler processes one decoded attempt event. A returned error leaves
// the offset uncommitted so the event is redelivered.
type EventHandler interface {
	Handle(ctx context.Context, ev AttemptEvent) error
}

// EventHandlerFunc adapts a bare function to EventHandler.
type EventHandlerFunc func(ctx context.Context, ev AttemptEvent) error

func (f EventHandlerFunc) Handle(ctx context.Context, ev AttemptEvent) error { return f(ctx, ev) }

// reader is the consuming subset of kafka.Reader, split out so tests can
// substitute a fake.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads attempt events from the topic within a consumer group and
// hands them to a handler, committing only after the handler succeeds.
type Consumer struct {
	reader reader
	topic  string
	logger logging.Logger
}

// NewConsumer wires a group consumer for the attempt topic.
func NewConsumer(cfg config.KafkaConfig, logger logging.Logger) (*Consumer, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if len(cfg.Brokers) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeMessagingError, "kafka consumer requires at least one broker")
	}
	if cfg.AttemptTopic == "" {
		return nil, pkgerrors.New(pkgerrors.ErrCodeMessagingError, "kafka consumer requires a topic")
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.AttemptTopic,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		MaxWait:        time.Second,
		CommitInterval: 0, // synchronous commits
	})
	return &Consumer{
		reader: r,
		topic:  cfg.AttemptTopic,
		logger: logger.Named("kafka.consumer"),
	}, nil
}

// newConsumerWithReader injects a reader for tests.
func newConsumerWithReader(r reader, topic string, logger logging.Logger) *Consumer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Consumer{reader: r, topic: topic, logger: logger.Named("kafka.consumer")}
}

// Run consumes until ctx is cancelled or the reader is closed. Events that
// fail to decode are committed and skipped: redelivery cannot fix a malformed
// payload. Handler failures leave the offset uncommitted.
func (c *Consumer) Run(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return pkgerrors.Wrap(err, pkgerrors.ErrCodeMessagingError, "failed to fetch message")
		}

		var ev AttemptEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.logger.Error("skipping undecodable attempt event",
				logging.String("topic", c.topic),
				logging.Int("partition", msg.Partition),
				logging.Err(err))
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				return pkgerrors.Wrap(err, pkgerrors.ErrCodeMessagingError, "failed to commit skipped message")
			}
			continue
		}

		if err := handler.Handle(ctx, ev); err != nil {
			c.logger.Error("attempt event handler failed, leaving offset uncommitted",
				logging.String("event_id", ev.EventID),
				logging.Err(err))
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.ErrCodeMessagingError, "failed to commit message")
		}
	}
}

// Close shuts the underlying reader down, which also unblocks Run.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
