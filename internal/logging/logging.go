// Package logging builds the zap loggers shared by the command-line tools.
package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatJSON selects the production encoder.
	FormatJSON = "json"
	// FormatConsole selects the human-readable development encoder.
	FormatConsole = "console"
)

// New returns a logger writing to stderr at the given level ("debug",
// "info", ...) using the given format.
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "logging: parse level")
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case FormatJSON, "":
		cfg = zap.NewProductionConfig()
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, errors.Errorf("logging: unknown format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "logging: build")
	}
	return logger, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *zap.Logger { return zap.NewNop() }
