// Package logger is the process-wide structured logger. It wraps zap and
// attaches the active trace and span IDs to every entry.
package logger

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rustyeddy/stockreport/internal/trace"
)

var (
	mu    sync.RWMutex
	sugar = zap.NewNop().Sugar()
)

// Init builds the logger. level is one of debug|info|warn|error.
// Development mode switches to the console encoder.
func Init(level string, development bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Set(l)
	return nil
}

// Set replaces the logger. Tests use it with zaptest/observer.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.Sugar()
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar.Desugar()
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = sugar.Sync()
}

// ParseLevel maps a level name onto a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", level)
}

func with(ctx context.Context, kv []any) []any {
	if ctx == nil {
		return kv
	}
	if traceID, spanID, ok := trace.Fields(ctx); ok {
		kv = append(kv, "trace_id", traceID, "span_id", spanID)
	}
	return kv
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debug(ctx context.Context, msg string, kv ...any) {
	get().Debugw(msg, with(ctx, kv)...)
}

func Info(ctx context.Context, msg string, kv ...any) {
	get().Infow(msg, with(ctx, kv)...)
}

func Warn(ctx context.Context, msg string, kv ...any) {
	get().Warnw(msg, with(ctx, kv)...)
}

func Error(ctx context.Context, msg string, kv ...any) {
	get().Errorw(msg, with(ctx, kv)...)
}

// ErrorWithErr logs msg at error level with err under the "error" key.
func ErrorWithErr(ctx context.Context, msg string, err error, kv ...any) {
	kv = append([]any{"error", err}, kv...)
	get().Errorw(msg, with(ctx, kv)...)
}
