package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MarcGrol/bookstorebackend/lib/mycontext"
)

func init() {
	if os.Getenv("LOG_PLAIN") == "" {
		New = newZapLogger
	}
}

type zapLogger struct {
	logger *zap.SugaredLogger
}

func newZapLogger(componentName string) Logger {
	config := zap.NewProductionConfig()
	config.DisableStacktrace = true
	logger, err := config.Build()
	if err != nil {
		// No sane way to continue without a logger
		panic(fmt.Sprintf("error creating zap logger: %s", err))
	}

	return zapLogger{
		logger: logger.Sugar().Named(componentName),
	}
}

func (l zapLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	logger := l.logger
	if requestID := mycontext.GetTraceID(ctx); requestID != "" {
		logger = logger.With("requestId", requestID)
	}
	if traceLabel != "" {
		logger = logger.With("trace", traceLabel)
	}

	switch severity {
	case SeverityDebug:
		logger.Debugf(format, a...)
	case SeverityWarn:
		logger.Warnf(format, a...)
	case SeverityError:
		logger.Errorf(format, a...)
	default:
		logger.Infof(format, a...)
	}
}
