package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	TrySetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
