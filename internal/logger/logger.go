package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger. Debug mode switches to the development
// preset with human-readable output; otherwise JSON production logging to
// stderr so command output on stdout stays parseable.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to build development logger: %w", err)
		}
		return log, nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
