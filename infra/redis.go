package infra

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventsnap/eventsnap-service/config"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found in store")

// RedisClient wraps the key-value store used as the only metadata
// persistence: point get/set/delete plus prefix scan.
type RedisClient struct {
	Client *redis.Client
}

func InitRedisClient(cfg *config.EnvConfig) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.RedisHost + ":" + cfg.Redis.RedisPort,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}

	log.Println("Connected to Redis:", cfg.Redis.RedisPort+" on "+cfg.Redis.RedisHost)

	return &RedisClient{Client: client}
}

func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisClient) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrKeyNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	return r.Client.Del(ctx, keys...).Err()
}

func (r *RedisClient) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// escapeMatchPattern escapes glob metacharacters so a prefix built from
// arbitrary input matches literally. Key segments like user ids are
// client-supplied and may contain *, ?, [, ] or \.
func escapeMatchPattern(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KeysByPrefix returns all keys starting literally with prefix.
func (r *RedisClient) KeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	return r.Client.Keys(ctx, escapeMatchPattern(prefix)+"*").Result()
}

// GetByPrefix returns the raw values of all keys starting with prefix.
// Keys deleted between the scan and the reads are skipped.
func (r *RedisClient) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	keys, err := r.KeysByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	values := make([][]byte, 0, len(keys))
	for _, key := range keys {
		data, err := r.Client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		values = append(values, data)
	}
	return values, nil
}

// CountByPrefix returns the number of keys starting with prefix.
func (r *RedisClient) CountByPrefix(ctx context.Context, prefix string) (int, error) {
	keys, err := r.KeysByPrefix(ctx, prefix)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
