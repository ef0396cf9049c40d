package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a production SugaredLogger with the given service
// name. Output goes to stderr so it never interleaves with data
// written to stdout by CLI pipelines.
func New(service string) *zap.SugaredLogger {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.InitialFields = map[string]any{"service": service}
	config.DisableStacktrace = true

	log, err := config.Build()
	if err != nil {
		log = zap.NewNop()
	}
	return log.Sugar()
}

// NewNop returns a no-op logger for tests and library consumers that
// do not care about diagnostics.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
