package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rafaelleal24/product-service/internal/adapters/config"
	"github.com/rafaelleal24/product-service/internal/core/domain"
	"github.com/rafaelleal24/product-service/internal/core/logger"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQAdapter publishes domain events to the exchange configured for
// their entity with the event name as routing key, and consumes queues on
// dedicated channels.
type RabbitMQAdapter struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	config  config.RabbitMQConfig
}

func NewRabbitMQAdapter(cfg config.RabbitMQConfig) (*RabbitMQAdapter, error) {
	adapter := &RabbitMQAdapter{config: cfg}

	if err := adapter.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return adapter, nil
}

func (r *RabbitMQAdapter) connect() error {
	conn, err := amqp.Dial(r.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}
	r.conn = conn

	if err := r.openChannel(); err != nil {
		conn.Close()
		r.conn = nil
		return err
	}
	return nil
}

func (r *RabbitMQAdapter) openChannel() error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	for _, ec := range r.config.ExchangeConfigs {
		if err := ch.ExchangeDeclare(ec.Name, ec.Type, ec.Durable, ec.AutoDelete, false, false, nil); err != nil {
			ch.Close()
			return fmt.Errorf("failed to declare exchange %s: %w", ec.Name, err)
		}
	}

	r.channel = ch
	return nil
}

// ensureChannel reopens the publish channel, redialing only when the
// connection itself is gone so consumers on a live connection keep running.
func (r *RabbitMQAdapter) ensureChannel() error {
	if r.conn == nil || r.conn.IsClosed() {
		return r.reconnect()
	}
	if r.channel != nil && !r.channel.IsClosed() {
		return nil
	}
	return r.openChannel()
}

func (r *RabbitMQAdapter) reconnect() error {
	if r.channel != nil {
		r.channel.Close()
		r.channel = nil
	}
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
	return r.connect()
}

// exchangeFor returns the configured exchange for an entity's events,
// falling back to "exchange.<entity>".
func (r *RabbitMQAdapter) exchangeFor(entity string) string {
	for _, ec := range r.config.ExchangeConfigs {
		if ec.Entity == entity {
			return ec.Name
		}
	}
	return "exchange." + entity
}

func (r *RabbitMQAdapter) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.GetName(), err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         event.GetName(),
	}
	return r.publish(ctx, r.exchangeFor(event.GetEntityName()), event.GetName(), msg)
}

func (r *RabbitMQAdapter) publish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(r.config.RetryDelay)
		}

		r.mu.Lock()

		if r.channel == nil || r.channel.IsClosed() {
			if err := r.ensureChannel(); err != nil {
				r.mu.Unlock()
				lastErr = fmt.Errorf("reconnect failed: %w", err)
				logger.Error(ctx, "publish: reconnect failed", err, map[string]any{
					"attempt": attempt + 1,
				})
				continue
			}
		}

		err := r.channel.PublishWithContext(ctx, exchange, routingKey, false, false, msg)
		if err != nil {
			r.channel.Close()
			r.channel = nil
			r.mu.Unlock()
			lastErr = err
			logger.Error(ctx, "publish: failed", err, map[string]any{
				"attempt":     attempt + 1,
				"exchange":    exchange,
				"routing_key": routingKey,
			})
			continue
		}

		r.mu.Unlock()
		return nil
	}

	return fmt.Errorf("failed to publish after %d attempts: %w", r.config.MaxRetries+1, lastErr)
}

// Message is a delivery handed to a consumer handler.
type Message struct {
	Body        []byte
	ContentType string
	RoutingKey  string
	Redelivered bool
}

// HandlerFunc processes one message. A nil error acks it; any error
// rejects it without requeue.
type HandlerFunc func(ctx context.Context, msg Message) error

// Consume declares the queue, binds it, and dispatches deliveries to handler
// one at a time until ctx is cancelled. A lost channel or connection is
// re-established with exponential backoff; only a rejected queue setup
// (missing exchange, access refused, conflicting declaration) is returned.
func (r *RabbitMQAdapter) Consume(ctx context.Context, queue config.QueueConfig, handler HandlerFunc) error {
	retry := backoff.NewExponentialBackOff()
	if r.config.RetryDelay > 0 {
		retry.InitialInterval = r.config.RetryDelay
	}
	retry.MaxInterval = maxConsumeBackoff
	retry.MaxElapsedTime = 0

	err := backoff.RetryNotify(func() error {
		return r.consume(ctx, queue, handler, retry.Reset)
	}, backoff.WithContext(retry, ctx), func(err error, wait time.Duration) {
		logger.Error(ctx, "consume: interrupted, retrying", err, map[string]any{
			"queue":    queue.Name,
			"retry_in": wait.String(),
		})
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

const maxConsumeBackoff = 30 * time.Second

// consume runs one consumer session. It returns nil when ctx is done.
func (r *RabbitMQAdapter) consume(ctx context.Context, queue config.QueueConfig, handler HandlerFunc, started func()) error {
	r.mu.Lock()
	if r.conn == nil || r.conn.IsClosed() {
		if err := r.reconnect(); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}
	ch, err := r.conn.Channel()
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queue.Name, true, false, false, false, nil); err != nil {
		return setupError(fmt.Errorf("failed to declare queue %s: %w", queue.Name, err))
	}
	if queue.Exchange != "" {
		if err := ch.QueueBind(queue.Name, queue.RoutingKey, queue.Exchange, false, nil); err != nil {
			return setupError(fmt.Errorf("failed to bind queue %s to %s: %w", queue.Name, queue.Exchange, err))
		}
	}
	if queue.Prefetch > 0 {
		if err := ch.Qos(queue.Prefetch, 0, false); err != nil {
			return fmt.Errorf("failed to set qos: %w", err)
		}
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", queue.Name, err)
	}

	started()
	logger.Info(ctx, "Consumer started", map[string]any{"queue": queue.Name})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("delivery channel for %s closed", queue.Name)
			}
			r.dispatch(ctx, queue.Name, d, handler)
		}
	}
}

// setupError marks broker refusals that retrying cannot fix as permanent.
func setupError(err error) error {
	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) {
		switch amqpErr.Code {
		case amqp.NotFound, amqp.AccessRefused, amqp.PreconditionFailed:
			return backoff.Permanent(err)
		}
	}
	return err
}

func (r *RabbitMQAdapter) dispatch(ctx context.Context, queue string, d amqp.Delivery, handler HandlerFunc) {
	err := handler(ctx, Message{
		Body:        d.Body,
		ContentType: d.ContentType,
		RoutingKey:  d.RoutingKey,
		Redelivered: d.Redelivered,
	})
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			logger.Error(ctx, "consume: ack failed", ackErr, map[string]any{"queue": queue})
		}
		return
	}

	logger.Error(ctx, "consume: message rejected", err, map[string]any{
		"queue":        queue,
		"redelivered":  d.Redelivered,
		"delivery_tag": d.DeliveryTag,
	})
	if nackErr := d.Nack(false, false); nackErr != nil {
		logger.Error(ctx, "consume: nack failed", nackErr, map[string]any{"queue": queue})
	}
}

func (r *RabbitMQAdapter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing channel: %w", err))
		}
		r.channel = nil
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing connection: %w", err))
		}
		r.conn = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ: %v", errs)
	}
	return nil
}

func (r *RabbitMQAdapter) HealthCheck() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return fmt.Errorf("connection is closed")
	}
	if r.channel == nil {
		return fmt.Errorf("channel is nil")
	}
	return nil
}
