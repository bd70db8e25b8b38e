package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/rafaelleal24/product-service/internal/adapters/config"
	"github.com/rafaelleal24/product-service/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/product-service/internal/core/logger"
	"github.com/rafaelleal24/product-service/internal/core/service"
)

type FileProcessor interface {
	ProcessFile(ctx context.Context, bucket, key string) (*service.ImportSummary, error)
}

type MessageSource interface {
	Consume(ctx context.Context, queue config.QueueConfig, handler rabbitmq.HandlerFunc) error
}

// Consumer turns bucket notifications into file imports. Notifications use
// the S3 event layout, which MinIO also emits for AMQP targets.
type Consumer struct {
	source    MessageSource
	processor FileProcessor
	queue     config.QueueConfig
}

func NewConsumer(source MessageSource, processor FileProcessor, queue config.QueueConfig) *Consumer {
	return &Consumer{
		source:    source,
		processor: processor,
		queue:     queue,
	}
}

// Run blocks until ctx is cancelled or the source fails.
func (c *Consumer) Run(ctx context.Context) error {
	return c.source.Consume(ctx, c.queue, c.Handle)
}

// Handle processes every ObjectCreated record of one notification.
// Malformed notifications are logged and dropped by returning nil.
func (c *Consumer) Handle(ctx context.Context, msg rabbitmq.Message) error {
	var event events.S3Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logger.Warn(ctx, "import: malformed notification dropped", map[string]any{
			"error": err.Error(),
			"body":  truncate(string(msg.Body), 512),
		})
		return nil
	}
	if len(event.Records) == 0 {
		logger.Warn(ctx, "import: notification without records dropped", map[string]any{
			"routing_key": msg.RoutingKey,
		})
		return nil
	}

	for _, record := range event.Records {
		if !strings.Contains(record.EventName, "ObjectCreated") {
			logger.Debug(ctx, "import: event ignored", map[string]any{"event_name": record.EventName})
			continue
		}

		bucket := record.S3.Bucket.Name
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			logger.Warn(ctx, "import: undecodable object key dropped", map[string]any{
				"bucket": bucket,
				"key":    record.S3.Object.Key,
				"error":  err.Error(),
			})
			continue
		}

		summary, err := c.processor.ProcessFile(ctx, bucket, key)
		if err != nil {
			return fmt.Errorf("import %s/%s: %w", bucket, key, err)
		}
		if !summary.Skipped {
			logger.Debug(ctx, "import: notification handled", map[string]any{
				"bucket":  bucket,
				"key":     key,
				"created": summary.Created,
			})
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
