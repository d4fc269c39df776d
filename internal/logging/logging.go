// Package logging builds the zap logger shared by the hosts.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrUnknownLevel = errors.New("logging: unknown level")

// ParseLevel maps a level name to zap. An empty name means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// New returns a JSON logger writing to path. With no path the logger
// discards everything, which keeps terminal hosts clean.
func New(path, level string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
		DisableCaller:    true,
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
