package dedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"newsletter/internal/pkg/circuitbreaker"
	"newsletter/internal/pkg/config"
	"newsletter/internal/pkg/logger"
)

// Implements the Index interface with Redis as the backing store, so several
// ingestion tools can share one dedup view. Lookups fail open: on a Redis
// error we report "not found" and let the store write, since a duplicate
// record is recoverable and a blocked ingest is not. The filesystem scan can
// always repopulate these hashes. A circuit breaker stops us hammering Redis
// when it is down.
type redisIndex struct {
	client         *redis.Client
	breaker        *circuitbreaker.CircuitBreaker
	urlKey         string
	fingerprintKey string
}

// Creates a new Index backed by two Redis hashes.
func NewRedisIndex(config *config.Config) (Index, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.RedisHost, config.RedisPort),
		Password: config.RedisPassword, // "" if no auth
		DB:       config.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Error("Failed to connect to Redis", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Connected to Redis successfully",
		zap.String("host", config.RedisHost),
		zap.String("port", config.RedisPort),
	)

	return &redisIndex{
		client:         rdb,
		breaker:        circuitbreaker.NewCircuitBreaker("redis", 5, 30*time.Second),
		urlKey:         "newsletter_url_index",
		fingerprintKey: "newsletter_fingerprint_index",
	}, nil
}

func (idx *redisIndex) LookupURL(urlHash string) (string, bool) {
	return idx.lookup(idx.urlKey, urlHash)
}

func (idx *redisIndex) LookupFingerprint(fingerprint string) (string, bool) {
	return idx.lookup(idx.fingerprintKey, fingerprint)
}

func (idx *redisIndex) lookup(key, field string) (string, bool) {
	var id string
	var found bool

	err := idx.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		result, err := idx.client.HGet(ctx, key, field).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		id = result
		found = true
		return nil
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return "", false
	}
	if err != nil {
		logger.Log.Error("Redis index lookup failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return id, found
}

func (idx *redisIndex) Add(urlHash, fingerprint, contentID string) {
	err := idx.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if urlHash != "" {
			if err := idx.client.HSet(ctx, idx.urlKey, urlHash, contentID).Err(); err != nil {
				return err
			}
		}
		if fingerprint != "" {
			if err := idx.client.HSet(ctx, idx.fingerprintKey, fingerprint, contentID).Err(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		logger.Log.Error("Failed to store hashes in Redis", zap.Error(err))
	}
}

func (idx *redisIndex) Remove(urlHash, fingerprint string) {
	err := idx.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := idx.client.HDel(ctx, idx.urlKey, urlHash).Err(); err != nil {
			return err
		}
		return idx.client.HDel(ctx, idx.fingerprintKey, fingerprint).Err()
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		logger.Log.Error("Failed to evict hashes from Redis", zap.Error(err))
	}
}
