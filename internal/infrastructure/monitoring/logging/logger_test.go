package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "solver", Value: "sandmeyer"}, String("solver", "sandmeyer"))
	assert.Equal(t, Field{Key: "count", Value: 3}, Int("count", 3))
	assert.Equal(t, Field{Key: "ok", Value: true}, Bool("ok", true))
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestZapLoggerEmitsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core)

	l.Info("solver fired", String("solver", "diazotization"), Int("priority", 1))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "solver fired", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "diazotization", ctx["solver"])
	assert.Equal(t, int64(1), ctx["priority"])
}

func TestWithAddsPersistentFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).With(String("component", "dispatch"))

	l.Warn("solver panicked")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "dispatch", entries[0].ContextMap()["component"])
}

func TestNamedAppendsName(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).Named("engine").Named("dispatch")

	l.Info("started")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "engine.dispatch", entries[0].LoggerName)
}

func TestNewLoggerDefaults(t *testing.T) {
	l, err := NewLogger(Config{})
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNopLoggerIsSilent(t *testing.T) {
	l := NewNopLogger()
	// Must not panic; With/Named return usable loggers.
	l.With(String("k", "v")).Named("x").Info("ignored")
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	prev := Default()
	SetDefault(nil)
	assert.Equal(t, prev, Default())
}
