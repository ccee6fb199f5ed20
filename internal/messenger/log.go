package messenger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/patient-monitor/internal/logger"
)

// Log writes messages to the logger carried by the context at info level,
// even when the configured level is higher.
type Log struct{}

// NewLog creates a Log messenger.
func NewLog() *Log {
	return new(Log)
}

// Send logs text.
func (*Log) Send(ctx context.Context, text string) error {
	logger.FromContext(ctx).
		WithOptions(logger.WithLevel(zapcore.InfoLevel)).
		Desugar().
		Info("Caregiver message", zap.String("text", text))

	return nil
}
