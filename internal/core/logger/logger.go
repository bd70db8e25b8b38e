package logger

import (
	"context"
	"os"
	"time"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelFatal LogLevel = "FATAL"
)

type attributes = map[string]any

type LogEntry struct {
	Level      LogLevel
	Message    string
	Attributes attributes
	Error      error
	Timestamp  time.Time
}

type Logger interface {
	Log(ctx context.Context, entry LogEntry)
	Shutdown(ctx context.Context) error
}

// Options selects the log sink. Production ships records to an OTLP
// collector, otherwise records go to stdout in Format ("text" or "json").
type Options struct {
	CollectorEndpoint string
	ServiceName       string
	IsProduction      bool
	Format            string
}

var globalLogger Logger = &noopLogger{}

func newLogEntry(level LogLevel, message string, err error, attrs attributes) LogEntry {
	return LogEntry{
		Level:      level,
		Message:    message,
		Attributes: attrs,
		Error:      err,
		Timestamp:  time.Now(),
	}
}

func Debug(ctx context.Context, message string, attrs attributes) {
	globalLogger.Log(ctx, newLogEntry(LogLevelDebug, message, nil, attrs))
}

func Info(ctx context.Context, message string, attrs attributes) {
	globalLogger.Log(ctx, newLogEntry(LogLevelInfo, message, nil, attrs))
}

func Warn(ctx context.Context, message string, attrs attributes) {
	globalLogger.Log(ctx, newLogEntry(LogLevelWarn, message, nil, attrs))
}

func Error(ctx context.Context, message string, err error, attrs attributes) {
	globalLogger.Log(ctx, newLogEntry(LogLevelError, message, err, attrs))
}

func Fatal(ctx context.Context, message string, err error, attrs attributes) {
	globalLogger.Log(ctx, newLogEntry(LogLevelFatal, message, err, attrs))
}

func Log(ctx context.Context, entry LogEntry) {
	globalLogger.Log(ctx, entry)
}

func Shutdown(ctx context.Context) error {
	return globalLogger.Shutdown(ctx)
}

func Initialize(opts Options) error {
	var (
		l   Logger
		err error
	)

	if opts.IsProduction {
		l, err = initializeOtelLogger(opts.CollectorEndpoint, opts.ServiceName)
	} else {
		l, err = initStdoutLogger(opts.ServiceName, opts.Format, os.Stdout)
	}

	if err != nil {
		return err
	}

	globalLogger = l
	return nil
}
