package auth

import (
	"context"
	"github.com/go-redis/redis/v8"
	"time"
)

// Revocations хранит отозванные при logout токены до их истечения
type Revocations interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const blacklistPrefix = "blacklist:"

type RedisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

func (r *RedisRevocations) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, blacklistPrefix+token, 1, ttl).Err()
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
