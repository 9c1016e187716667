package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const movieTTL = 5 * time.Minute

// Cache is a Redis cache-aside layer for movie reads. A nil client turns every
// operation into a no-op, so the service runs unchanged without Redis.
type Cache struct {
	rdb    *redis.Client
	logger *log.Logger
}

// New connects to Redis at redisURL. An empty URL or a failed connection
// disables caching rather than failing startup.
func New(redisURL string, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	if redisURL == "" {
		logger.Println("cache: no REDIS_URL configured, caching disabled")
		return &Cache{logger: logger}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Printf("cache: invalid REDIS_URL, caching disabled: %v", err)
		return &Cache{logger: logger}
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Printf("cache: connection failed, caching disabled: %v", err)
		return &Cache{logger: logger}
	}

	logger.Println("cache: redis connected")
	return &Cache{rdb: rdb, logger: logger}
}

// GetMovie returns the cached payload for a movie, or nil on miss or when
// caching is disabled.
func (c *Cache) GetMovie(ctx context.Context, movieID int64) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, movieKey(movieID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetMovie stores a movie payload under its TTL.
func (c *Cache) SetMovie(ctx context.Context, movieID int64, payload interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, movieKey(movieID), b, movieTTL).Err()
}

// InvalidateMovie drops a movie from the cache after a rating or edit.
func (c *Cache) InvalidateMovie(ctx context.Context, movieID int64) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, movieKey(movieID)).Err()
}

// Close shuts down the Redis connection.
func (c *Cache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func movieKey(movieID int64) string {
	return fmt.Sprintf("movie:%d", movieID)
}
