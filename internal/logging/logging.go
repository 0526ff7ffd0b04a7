// Package logging builds the zap logger shared by the server, middleware and services.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Production selects the JSON logger; any other environment gets the console logger.
const Production = "production"

// New builds a logger for env. Production writes JSON to stdout, everything
// else writes colored console output at debug level.
func New(env string) (*zap.Logger, error) {
	var config zap.Config

	if env == Production {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config.Build(zap.AddStacktrace(zap.DPanicLevel))
}

// OrNop returns l, or a no-op logger when l is nil, so constructors can accept
// an optional logger.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
