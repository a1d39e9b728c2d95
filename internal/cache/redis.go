package cache

import (
	"context"
	"time"

	"resolux-app/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Client wraps go-redis with the few operations the app needs.
type Client struct {
	rdb *redis.Client
}

var shared *Client

// Init connects the shared client. The cache is optional: when Redis is not
// reachable the app still works, status checks just read the subscribers
// table on every request instead of a cached answer.
func Init() {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.REDIS_ADDR,
		Password: config.REDIS_PASSWORD,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, subscription status cache disabled")
		return
	}

	shared = &Client{rdb: rdb}
	log.Info().Str("addr", config.REDIS_ADDR).Msg("Redis connected")
}

// Shared returns the process-wide client, nil when Redis is disabled.
func Shared() *Client { return shared }

func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// IsMiss reports whether err is a plain cache miss.
func IsMiss(err error) bool { return err == redis.Nil }
