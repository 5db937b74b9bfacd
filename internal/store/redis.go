package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/i474232898/business-hours/internal/business"
)

// ErrCacheMiss is returned when no feed is cached for a location.
var ErrCacheMiss = errors.New("feed not cached")

const feedKeyPrefix = "businesshours:feed:"

// RedisFeedCache keeps the last good raw feed of each location in Redis.
type RedisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient opens a client in the shape the config describes.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisFeedCache wraps client. A ttl <= 0 keeps entries forever.
func NewRedisFeedCache(client *redis.Client, ttl time.Duration) *RedisFeedCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisFeedCache{client: client, ttl: ttl}
}

func feedKey(loc business.Location) string {
	return feedKeyPrefix + loc.Key
}

func (c *RedisFeedCache) SaveFeed(ctx context.Context, loc business.Location, feed business.Feed) error {
	data, err := sonic.Marshal(feed)
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	return c.client.Set(ctx, feedKey(loc), data, c.ttl).Err()
}

func (c *RedisFeedCache) LoadFeed(ctx context.Context, loc business.Location) (business.Feed, error) {
	data, err := c.client.Get(ctx, feedKey(loc)).Bytes()
	if errors.Is(err, redis.Nil) {
		return business.Feed{}, ErrCacheMiss
	}
	if err != nil {
		return business.Feed{}, err
	}

	var feed business.Feed
	if err := sonic.Unmarshal(data, &feed); err != nil {
		return business.Feed{}, fmt.Errorf("decode cached feed: %w", err)
	}
	return feed, nil
}

// Ping checks the connection.
func (c *RedisFeedCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisFeedCache) Close() error {
	return c.client.Close()
}
