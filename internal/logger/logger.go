// Package logger holds the process-wide zap logger
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process logger. It is a no-op logger until Init is called.
var Logger = zap.NewNop()

// Init builds the process logger for the given level ("debug", "info", "warn", "error").
// The development encoder is used for "debug", the production JSON encoder otherwise.
func Init(level string) error {
	l, err := New(level)
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// New builds a zap logger for the given level
func New(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// Sync flushes buffered log entries
func Sync() {
	_ = Logger.Sync()
}
