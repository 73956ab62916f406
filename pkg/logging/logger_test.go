package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{Level: "info"}) })
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARNING": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	buf := captureLogs(t, "info")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	Ctx(ctx).Info().Msg("hello")

	entry := lastEntry(t, buf)
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "hello", entry["message"])
}

func TestGormLoggerTrace(t *testing.T) {
	buf := captureLogs(t, "debug")
	gl := NewGormLogger(10 * time.Millisecond)
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(ctx, time.Now(), fc, errors.New("boom"))
	assert.Equal(t, "Query failed", lastEntry(t, buf)["message"])

	gl.Trace(ctx, time.Now().Add(-time.Second), fc, nil)
	assert.Equal(t, "Slow query", lastEntry(t, buf)["message"])

	buf.Reset()
	gl.Trace(ctx, time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Equal(t, "Query", lastEntry(t, buf)["message"])

	buf.Reset()
	gl.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), fc, errors.New("boom"))
	assert.Empty(t, buf.String())
}
