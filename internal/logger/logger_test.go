package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rustyeddy/stockreport/internal/trace"
)

func observe(t *testing.T, lvl zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(lvl)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })
	return logs
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{" error ", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init("loud", false))
}

func TestLevelsAndFields(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)
	ctx := context.Background()

	Debug(ctx, "hidden")
	Info(ctx, "language changed", "language", "en")
	ErrorWithErr(ctx, "persist failed", errors.New("disk full"), "path", "/tmp/x")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "language changed", entries[0].Message)
	assert.Equal(t, "en", entries[0].ContextMap()["language"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "disk full", entries[1].ContextMap()["error"])
	assert.Equal(t, "/tmp/x", entries[1].ContextMap()["path"])
}

func TestTraceIDsAttached(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	var buf bytes.Buffer
	require.NoError(t, trace.Init("test", &buf))
	t.Cleanup(func() { _ = trace.Shutdown(context.Background()) })

	ctx, span := trace.StartSpan(context.Background(), "op")
	defer span.End()
	Warn(ctx, "slow render")

	traceID, spanID, ok := trace.Fields(ctx)
	require.True(t, ok)
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, traceID, fields["trace_id"])
	assert.Equal(t, spanID, fields["span_id"])
}
