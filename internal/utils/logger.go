package utils

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger is the logging surface handlers depend on
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	Slog() *slog.Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger adapts a *slog.Logger to Logger
func NewSlogLogger(logger *slog.Logger) Logger {
	return &slogLogger{logger: logger}
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) Slog() *slog.Logger {
	return l.logger
}

type loggerCtxKey struct{}

const ginLoggerKey = "logger"

// WithLogger stores a logger in ctx
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// LoggerFromContext returns the request logger, or fallback when none is set
func LoggerFromContext(ctx context.Context, fallback Logger) Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(Logger); ok {
		return l
	}
	return fallback
}

// ContextLogger attaches a logger carrying the request id to the request
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := logger.With("request_id", c.GetString("request_id"))
		c.Set(ginLoggerKey, requestLogger)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), requestLogger))
		c.Next()
	}
}

// LoggerMiddleware writes one access log line per request
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		l := LoggerFromContext(c.Request.Context(), logger)
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			l.Error("request failed", append(args, "errors", c.Errors.String())...)
			return
		}
		if c.Writer.Status() >= 500 {
			l.Error("request completed", args...)
			return
		}
		l.Info("request completed", args...)
	}
}
