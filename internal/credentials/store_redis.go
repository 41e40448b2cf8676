package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stackadvisor-backend/internal/shared/util"
)

// RedisStore implements Store on top of a Redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed credential store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, scope, key string) (string, error) {
	val, err := s.client.Get(ctx, redisKey(scope, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get credential from Redis: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, scope, key, value string) error {
	if err := s.client.Set(ctx, redisKey(scope, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save credential to Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, redisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete credential from Redis: %w", err)
	}
	return nil
}

func redisKey(scope, key string) string {
	return fmt.Sprintf("credentials:%s:%s", util.HashUserKey(scope), key)
}
