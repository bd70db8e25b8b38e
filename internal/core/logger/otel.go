package logger

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type OTELLogger struct {
	logger   otellog.Logger
	provider *sdklog.LoggerProvider
}

func initializeOtelLogger(collectorEndpoint, serviceName string) (Logger, error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(
		collectorEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	logExporter, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	processor := sdklog.NewBatchProcessor(logExporter)
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(processor),
		sdklog.WithResource(res),
	)

	global.SetLoggerProvider(provider)

	return &OTELLogger{
		logger:   provider.Logger(serviceName),
		provider: provider,
	}, nil
}

func (l *OTELLogger) Log(ctx context.Context, entry LogEntry) {
	var logRecord otellog.Record
	logRecord.SetTimestamp(entry.Timestamp)
	logRecord.SetBody(otellog.StringValue(entry.Message))
	logRecord.SetSeverityText(string(entry.Level))

	switch entry.Level {
	case LogLevelDebug:
		logRecord.SetSeverity(otellog.SeverityDebug)
	case LogLevelInfo:
		logRecord.SetSeverity(otellog.SeverityInfo)
	case LogLevelWarn:
		logRecord.SetSeverity(otellog.SeverityWarn)
	case LogLevelError:
		logRecord.SetSeverity(otellog.SeverityError)
	case LogLevelFatal:
		logRecord.SetSeverity(otellog.SeverityFatal)
	}

	attrs := make([]otellog.KeyValue, 0, len(entry.Attributes)+1)
	for key, value := range entry.Attributes {
		attrs = append(attrs, toKeyValue(key, value))
	}

	if entry.Error != nil {
		attrs = append(attrs, otellog.String("error", entry.Error.Error()))
	}

	logRecord.AddAttributes(attrs...)
	l.logger.Emit(ctx, logRecord)
}

func (l *OTELLogger) Shutdown(ctx context.Context) error {
	return l.provider.Shutdown(ctx)
}

func toKeyValue(key string, value any) otellog.KeyValue {
	switch v := value.(type) {
	case string:
		return otellog.String(key, v)
	case time.Duration:
		return otellog.Int64(key, v.Milliseconds())
	case fmt.Stringer:
		return otellog.String(key, v.String())
	case int:
		return otellog.Int(key, v)
	case int64:
		return otellog.Int64(key, v)
	case float64:
		return otellog.Float64(key, v)
	case bool:
		return otellog.Bool(key, v)
	default:
		return otellog.String(key, fmt.Sprintf("%v", v))
	}
}
