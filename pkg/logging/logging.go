package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// contextKey defines a type for context keys
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	loggerKey    contextKey = "logger"
)

// Init builds the process-wide zap logger and installs it as the global, so
// packages that log through zap.S() share one configuration.
func Init(serviceName string, level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	if serviceName != "" {
		logger = logger.With(zap.String("service", serviceName))
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// WithRequestID stamps a request id onto the context and caches a child
// logger carrying it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	sugar := zap.S().With("request_id", requestID)
	return context.WithValue(ctx, loggerKey, sugar)
}

// FromContext returns the logger cached by WithRequestID, falling back to
// the global sugared logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if sugar, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok {
		return sugar
	}
	return zap.S()
}

// RequestID retrieves the request id from the context, if any.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}
	return ""
}
