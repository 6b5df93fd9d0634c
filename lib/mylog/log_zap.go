package mylog

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/MarcGrol/shopauth/lib/mycontext"
)

var base atomic.Pointer[zap.Logger]

func init() {
	base.Store(zap.NewNop())
}

// Init selects the backend: JSON for production (Cloud Logging parses it), console otherwise.
func Init(production bool) error {
	if production {
		return initWith(zap.NewProduction)
	}
	return initWith(zap.NewDevelopment)
}

func initWith(build func(...zap.Option) (*zap.Logger, error)) error {
	z, err := build()
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	SetBase(z)
	return nil
}

// SetBase replaces the underlying zap logger; tests use it to capture output.
func SetBase(z *zap.Logger) {
	base.Store(z)
}

func Sync() {
	_ = base.Load().Sync()
}

type zapLogger struct {
	componentName string
}

func New(componentName string) Logger {
	return zapLogger{
		componentName: componentName,
	}
}

func (l zapLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	z := base.Load()

	fields := []zap.Field{zap.String("component", l.componentName)}
	if traceLabel != "" {
		fields = append(fields, zap.String("aggregate", traceLabel))
	}
	if ctx != nil {
		if trace := mycontext.Trace(ctx); trace != "" {
			fields = append(fields, zap.String("logging.googleapis.com/trace", trace))
		}
		if requestID := mycontext.RequestID(ctx); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
	}

	msg := fmt.Sprintf(format, a...)
	switch severity {
	case SeverityDebug:
		z.Debug(msg, fields...)
	case SeverityWarn:
		z.Warn(msg, fields...)
	case SeverityError:
		z.Error(msg, fields...)
	default:
		z.Info(msg, fields...)
	}
}
