package database

import (
	"bookwell-service/internal/app/config"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func NewRedisClient(driverConfig *config.DriverConfig, log *logrus.Logger) *redis.Client {
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
	})

	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}

	log.Println("Successfully connected to redis")

	return rdb
}
