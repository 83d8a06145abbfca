// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger at the given level. Output goes to
// stderr, and additionally to file when file is non-empty.
func New(level, file string) (*zap.Logger, error) {
	outputs := []string{"stderr"}
	if file != "" {
		outputs = append(outputs, file)
	}
	return build(level, outputs)
}

// NewFileOnly builds a logger that writes only to file, for commands that own
// the terminal.
func NewFileOnly(level, file string) (*zap.Logger, error) {
	if file == "" {
		return nil, fmt.Errorf("log file is required")
	}
	return build(level, []string{file})
}

func build(level string, outputs []string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = outputs
	config.ErrorOutputPaths = outputs

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Level picks the effective level: verbose forces debug, quiet raises to error.
func Level(configured string, verbose, quiet bool) string {
	switch {
	case verbose:
		return "debug"
	case quiet:
		return "error"
	case configured == "":
		return "info"
	default:
		return configured
	}
}
