// Package logging provides the structured logger used by the CLI.
package logging

import (
	"io"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the structured logging interface.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
	Debug(msg string, fields map[string]any)
}

// JSONLogger writes structured JSON log entries to an io.Writer.
type JSONLogger struct {
	zl *zap.Logger
}

// NewJSONLogger creates a JSONLogger writing to w. Only warnings and errors
// are emitted unless verbose is true.
func NewJSONLogger(w io.Writer, verbose bool) *JSONLogger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	return &JSONLogger{zl: zap.New(core)}
}

// Nop returns a logger that discards everything.
func Nop() *JSONLogger {
	return &JSONLogger{zl: zap.NewNop()}
}

func (l *JSONLogger) Info(msg string, fields map[string]any)  { l.zl.Info(msg, zapFields(fields)...) }
func (l *JSONLogger) Warn(msg string, fields map[string]any)  { l.zl.Warn(msg, zapFields(fields)...) }
func (l *JSONLogger) Error(msg string, fields map[string]any) { l.zl.Error(msg, zapFields(fields)...) }
func (l *JSONLogger) Debug(msg string, fields map[string]any) { l.zl.Debug(msg, zapFields(fields)...) }

// Sync flushes buffered entries.
func (l *JSONLogger) Sync() error {
	return l.zl.Sync()
}

func zapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
