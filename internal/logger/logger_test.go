package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("tours-api")
	l.Logger = l.Output(&buf)

	l.Info().Msg("started")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "tours-api", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	tests := []struct {
		env  string
		want zerolog.Level
	}{
		{env: "production", want: zerolog.InfoLevel},
		{env: "development", want: zerolog.DebugLevel},
		{env: "", want: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			SetLevel(tt.env)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestNop(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "server").Logger()}

	child := parent.WithTraceID("0b6c2f1e")
	child.Info().Msg("traced")

	assert.NotSame(t, parent, child)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "0b6c2f1e", entry[TraceIDField])
	assert.Equal(t, "server", entry["role"])
}

func TestFromContext(t *testing.T) {
	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str(TraceIDField, "req-1").Logger()

		FromContext(zl.WithContext(context.Background())).Info().Msg("hit")

		assert.Equal(t, "req-1", lastEntry(t, &buf)[TraceIDField])
	})

	t.Run("falls back to the last created logger", func(t *testing.T) {
		NewLogger("fallback")

		l := FromContext(context.Background())

		require.NotNil(t, l)
		assert.NotEqual(t, zerolog.Disabled, l.GetLevel())
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str(TraceIDField, "req-2").Logger()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("hit")

	assert.Equal(t, "req-2", lastEntry(t, &buf)[TraceIDField])
}
