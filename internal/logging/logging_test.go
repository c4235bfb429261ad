package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToInfo(t *testing.T) {
	log := New("")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNew_ParsesLevel(t *testing.T) {
	log := New("debug")
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := New("not-a-level")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewWithWriter_EmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestWithContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")
	ctx := WithContext(context.Background(), log)

	retrieved := FromContext(ctx)
	retrieved.Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}

func TestFromContext_DefaultWhenAbsent(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}

func TestWithRun_AddsCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")
	run := WithRun(log, "run-123", 3)
	run.Info().Msg("starting")

	out := buf.String()
	require.Contains(t, out, "run-123")
	assert.Contains(t, out, `"files":3`)
}
