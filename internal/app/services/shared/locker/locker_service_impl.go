package locker

import (
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/pkg/constvars"
	"bookwell-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	lockerServiceInstance contracts.LockerService
	onceLockerService     sync.Once
)

type lockService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	onceLockerService.Do(func() {
		instance := &lockService{
			redisRepo: repo,
			Log:       logger,
		}
		lockerServiceInstance = instance
	})
	return lockerServiceInstance
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	lockValue := uuid.NewString()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, lockValue, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, "", err
	}

	if !acquired {
		s.Log.Info("lockService.TryLock not acquired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	return true, lockValue, nil
}

func (s *lockService) Unlock(ctx context.Context, key, lockValue string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	storedVal, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		s.Log.Error("lockService.Unlock error retrieving value from redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	if storedVal == "" {
		// Lock already expired, nothing to release.
		return nil
	}

	if storedVal != lockValue {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock not owned by this client"))
		s.Log.Error("lockService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	if delErr := s.redisRepo.Delete(ctx, key); delErr != nil {
		s.Log.Error("lockService.Unlock error deleting lock from redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(delErr),
		)
		return delErr
	}
	return nil
}
