package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

type StdoutLogger struct {
	logger *slog.Logger
	exit   func(code int)
}

func initStdoutLogger(serviceName, format string, w io.Writer) (Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var handler slog.Handler
	switch format {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return &StdoutLogger{
		logger: slog.New(handler).With(slog.String("service", serviceName)),
		exit:   os.Exit,
	}, nil
}

func (l *StdoutLogger) Log(ctx context.Context, entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	attrs := make([]any, 0, len(entry.Attributes)*2+2)
	for key, value := range entry.Attributes {
		attrs = append(attrs, key, value)
	}
	if entry.Error != nil {
		attrs = append(attrs, "error", entry.Error.Error())
	}

	switch entry.Level {
	case LogLevelDebug:
		l.logger.DebugContext(ctx, entry.Message, attrs...)
	case LogLevelInfo:
		l.logger.InfoContext(ctx, entry.Message, attrs...)
	case LogLevelWarn:
		l.logger.WarnContext(ctx, entry.Message, attrs...)
	case LogLevelError:
		l.logger.ErrorContext(ctx, entry.Message, attrs...)
	case LogLevelFatal:
		l.logger.ErrorContext(ctx, entry.Message, append(attrs, "fatal", true)...)
		l.exit(1)
	}
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	return nil
}
