// Package logging provides the diagnostics logger used across the subsystem.
// The rolling engine never writes its own operational messages into the log
// files it manages; they go through this interface instead.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the minimal structured logging surface the subsystem needs.
// Arguments are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ZapLogger adapts a zap.SugaredLogger to the Logger interface.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// New builds a production zap logger. level accepts the usual zap level
// names ("debug", "info", ...); unknown values fall back to info.
func New(level string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{s: l.Sugar()}, nil
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{s: l.Sugar()}
}

func (z *ZapLogger) Debug(msg string, args ...any) { z.s.Debugw(msg, args...) }
func (z *ZapLogger) Info(msg string, args ...any)  { z.s.Infow(msg, args...) }
func (z *ZapLogger) Warn(msg string, args ...any)  { z.s.Warnw(msg, args...) }
func (z *ZapLogger) Error(msg string, args ...any) { z.s.Errorw(msg, args...) }

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error { return z.s.Sync() }

// Nop discards everything. Useful in tests.
func Nop() Logger { return &ZapLogger{s: zap.NewNop().Sugar()} }
