package logger

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

type LoggerKey struct{}

// Logger wraps a klog-backed logr.Logger.
type Logger struct {
	Klogr logr.Logger
}

func NewLogger(ctx context.Context) *Logger {
	return &Logger{
		Klogr: klog.NewKlogr(),
	}
}

// WithMethod returns a logger scoped to a single query with a fresh trace
// ID, a context carrying it, and a function to log query completion.
func (l *Logger) WithMethod(method string) (*Logger, context.Context, func()) {
	traceID := uuid.New().String()
	scoped := &Logger{
		Klogr: l.Klogr.WithValues("method", method, "traceID", traceID),
	}
	ctx := context.WithValue(context.Background(), LoggerKey{}, scoped)

	scoped.V(4).Info("Starting method")

	return scoped, ctx, func() {
		scoped.V(4).Info("Method completed")
	}
}

func (l *Logger) V(level int) logr.Logger {
	return l.Klogr.V(level)
}

func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.Klogr.Error(err, msg, keysAndValues...)
}

// GetLogger retrieves the Logger from the context, or creates a new one
// if not present.
func GetLogger(ctx context.Context) *Logger {
	if log, ok := ctx.Value(LoggerKey{}).(*Logger); ok {
		return log
	}
	return NewLogger(ctx)
}
