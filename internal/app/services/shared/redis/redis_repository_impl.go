package redis

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/pkg/exceptions"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrRedisGet(err)
	}
	return data, nil
}

func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	err := r.client.Set(ctx, key, value, expiration).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	acquired, err := r.client.SetNX(ctx, key, value, expiration).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}
