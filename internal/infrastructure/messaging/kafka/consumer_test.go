package kafka

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askchem/askchem/internal/config"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

type fakeReader struct {
	messages  []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func eventMessage(t *testing.T, ev AttemptEvent) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafka.Message{Value: payload}
}

func TestNewConsumerRequiresBrokersAndTopic(t *testing.T) {
	_, err := NewConsumer(config.KafkaConfig{AttemptTopic: "askchem.attempts"}, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeMessagingError))

	_, err = NewConsumer(config.KafkaConfig{Brokers: []string{"localhost:9092"}}, nil)
	require.Error(t, err)
}

func TestRunHandlesAndCommits(t *testing.T) {
	r := &fakeReader{messages: []kafka.Message{
		eventMessage(t, AttemptEvent{EventID: "e1", StudentID: "s1", Status: "answered", TopicTags: []string{"amines"}}),
		eventMessage(t, AttemptEvent{EventID: "e2", StudentID: "s2", Status: "no_match"}),
	}}
	c := newConsumerWithReader(r, "askchem.attempts", nil)

	var seen []string
	err := c.Run(context.Background(), EventHandlerFunc(func(_ context.Context, ev AttemptEvent) error {
		seen = append(seen, ev.EventID)
		return nil
	}))
	require.NoError(t, err, "EOF ends the run cleanly")
	assert.Equal(t, []string{"e1", "e2"}, seen)
	assert.Len(t, r.committed, 2)
}

func TestRunSkipsUndecodablePayload(t *testing.T) {
	r := &fakeReader{messages: []kafka.Message{
		{Value: []byte("not json")},
		eventMessage(t, AttemptEvent{EventID: "e1"}),
	}}
	c := newConsumerWithReader(r, "askchem.attempts", nil)

	var seen int
	err := c.Run(context.Background(), EventHandlerFunc(func(context.Context, AttemptEvent) error {
		seen++
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, seen, "bad payload never reaches the handler")
	assert.Len(t, r.committed, 2, "bad payload is committed past, not redelivered")
}

func TestRunLeavesFailedHandlerUncommitted(t *testing.T) {
	r := &fakeReader{messages: []kafka.Message{
		eventMessage(t, AttemptEvent{EventID: "e1"}),
		eventMessage(t, AttemptEvent{EventID: "e2"}),
	}}
	c := newConsumerWithReader(r, "askchem.attempts", nil)

	err := c.Run(context.Background(), EventHandlerFunc(func(_ context.Context, ev AttemptEvent) error {
		if ev.EventID == "e1" {
			return pkgerrors.Internal("projection failed")
		}
		return nil
	}))
	require.NoError(t, err)
	require.Len(t, r.committed, 1)

	var committed AttemptEvent
	require.NoError(t, json.Unmarshal(r.committed[0].Value, &committed))
	assert.Equal(t, "e2", committed.EventID)
}

func TestConsumerClose(t *testing.T) {
	r := &fakeReader{}
	c := newConsumerWithReader(r, "askchem.attempts", nil)
	require.NoError(t, c.Close())
	assert.True(t, r.closed)
}
