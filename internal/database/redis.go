package database

import (
	"context"
	"time"

	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func ConnectRedis(addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Log.WithError(err).Error("Redis ping failed")
		rdb.Close()
		return nil, err
	}

	logger.Log.WithField("addr", addr).Info("Redis connected successfully")
	return rdb, nil
}
