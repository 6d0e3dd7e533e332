package observability

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. Development mode uses the console
// encoder; production emits JSON.
func NewLogger(development bool) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
