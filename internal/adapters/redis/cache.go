package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/product-service/internal/core/port"
	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
)

const keyNamespace = "product-service"

// Cache stores JSON encoded values under "product-service:<prefix>:<key>".
type Cache[T any] struct {
	client *Client
	prefix string
}

func NewCache[T any](client *Client, prefix string) port.CachePort[T] {
	return &Cache[T]{client: client, prefix: prefix}
}

func (c *Cache[T]) key(id string) string {
	return keyNamespace + ":" + c.prefix + ":" + id
}

// Get returns nil, nil for a missing or expired key.
func (c *Cache[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.client.get(ctx, c.key(id))
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, serviceerrors.NewStorageError("cache: get failed", err)
	}

	var value T
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return nil, serviceerrors.NewStorageError("cache: corrupt entry "+c.key(id), err)
	}
	return &value, nil
}

func (c *Cache[T]) Set(ctx context.Context, id string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.set(ctx, c.key(id), data, ttl); err != nil {
		return serviceerrors.NewStorageError("cache: set failed", err)
	}
	return nil
}

func (c *Cache[T]) SetNX(ctx context.Context, id string, value *T, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	ok, err := c.client.setNX(ctx, c.key(id), data, ttl)
	if err != nil {
		return false, serviceerrors.NewStorageError("cache: setnx failed", err)
	}
	return ok, nil
}

func (c *Cache[T]) Del(ctx context.Context, id string) error {
	if err := c.client.del(ctx, c.key(id)); err != nil {
		return serviceerrors.NewStorageError("cache: del failed", err)
	}
	return nil
}
