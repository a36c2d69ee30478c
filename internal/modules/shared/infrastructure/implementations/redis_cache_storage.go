package implementations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/docgate/docgate/internal/modules/shared/domain/definitions"
	"github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedUtilities "github.com/docgate/docgate/internal/modules/shared/utilities"
	"github.com/redis/go-redis/v9"
)

// redisCallTimeout bounds every round trip so a slow or unreachable Redis
// degrades a cache lookup to a miss instead of stalling admission.
const redisCallTimeout = 500 * time.Millisecond

// RedisCacheStorage implements the ResponseCache interface backed by Redis.
type RedisCacheStorage struct {
	client *redis.Client
}

var (
	redisCacheStorage *RedisCacheStorage
	redisOnce         sync.Once
)

// GetRedisCacheStorage returns a singleton ResponseCache backed by Redis, or
// nil when no Redis host is configured. A nil return means the response
// cache feature is disabled; callers must treat that as "always miss".
func GetRedisCacheStorage() definitions.ResponseCache {
	redisOnce.Do(func() {
		env := infrastructure.GetEnvironment()
		if env.RedisHost == "" {
			return
		}

		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", env.RedisHost, env.RedisPort),
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
		defer cancel()

		if _, err := client.Ping(ctx).Result(); err != nil {
			sharedUtilities.GetLogger().
				WithError(err).
				Warn("Redis unreachable at startup, response cache disabled")
			return
		}

		sharedUtilities.GetLogger().
			WithField("host", env.RedisHost).
			WithField("port", env.RedisPort).
			Info("Response cache initialized")

		redisCacheStorage = &RedisCacheStorage{client: client}
	})

	if redisCacheStorage == nil {
		return nil
	}
	return redisCacheStorage
}

// Set stores a byte payload in Redis with an optional expiration.
func (r *RedisCacheStorage) Set(request definitions.SetCacheEntryRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()

	var expiration time.Duration
	if request.Expiration > 0 {
		expiration = time.Duration(request.Expiration) * time.Second
	}

	if err := r.client.Set(ctx, request.Key, request.Value, expiration).Err(); err != nil {
		return fmt.Errorf("error setting cache key: %w", err)
	}

	return nil
}

// Get retrieves a byte payload from Redis by key. A missing key is not an
// error: it returns (nil, nil).
func (r *RedisCacheStorage) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()

	value, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting cache key: %w", err)
	}

	return value, nil
}

// Delete removes a key from Redis.
func (r *RedisCacheStorage) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting cache key: %w", err)
	}

	return nil
}
