// Package cache provides a Redis-backed cache for API resources, addressed
// polymorphically by object type and identifier.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/payapi"
)

// ErrMiss is returned when a resource is not cached.
var ErrMiss = errors.New("resource not in cache")

// NewClient creates a Redis client from a URL and verifies the connection.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// ResourceCache stores serialized API resources in Redis. Cached entries are
// snapshots with the same staleness caveats as any deserialized resource.
type ResourceCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a ResourceCache with the given entry TTL.
func New(client *redis.Client, ttl time.Duration) *ResourceCache {
	return &ResourceCache{
		client: client,
		prefix: "payapi:",
		ttl:    ttl,
	}
}

func (c *ResourceCache) key(objectType, id string) string {
	return c.prefix + objectType + ":" + id
}

// Put stores a resource under its type and identifier.
func (c *ResourceCache) Put(ctx context.Context, obj payapi.Object) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", obj.ObjectType(), err)
	}
	return c.client.Set(ctx, c.key(obj.ObjectType(), obj.ObjectID()), data, c.ttl).Err()
}

// Get loads a cached resource into v, returning ErrMiss when absent.
func (c *ResourceCache) Get(ctx context.Context, objectType, id string, v any) error {
	data, err := c.client.Get(ctx, c.key(objectType, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Delete removes a cached resource.
func (c *ResourceCache) Delete(ctx context.Context, objectType, id string) error {
	return c.client.Del(ctx, c.key(objectType, id)).Err()
}
