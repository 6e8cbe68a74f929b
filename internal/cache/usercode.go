// Package cache keeps the userCode -> user id mapping in Redis so that
// friend-request lookups skip the user collection scan.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by a KV when the key is absent.
var ErrMiss = errors.New("cache miss")

const userCodePrefix = "usercode:"

// KV is the small slice of Redis the cache needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisKV adapts a go-redis client to KV.
type RedisKV struct {
	Cli *redis.Client
}

func NewRedisKV(cli *redis.Client) *RedisKV {
	return &RedisKV{Cli: cli}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	s, err := r.Cli.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	return s, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.Cli.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) Del(ctx context.Context, key string) error {
	return r.Cli.Del(ctx, key).Err()
}

// CachedUsers decorates a Users repository with a read-through cache for
// GetByUserCode. User codes never change once assigned, so entries only
// expire by TTL. Cache failures degrade to the underlying repository.
type CachedUsers struct {
	repository.Users
	kv  KV
	ttl time.Duration
}

func NewCachedUsers(users repository.Users, kv KV, ttl time.Duration) *CachedUsers {
	return &CachedUsers{Users: users, kv: kv, ttl: ttl}
}

func (c *CachedUsers) GetByUserCode(ctx context.Context, code string) (*models.User, error) {
	key := userCodePrefix + code

	id, err := c.kv.Get(ctx, key)
	switch {
	case err == nil:
		user, err := c.Users.GetByID(ctx, id)
		if err == nil && user.UserCode == code {
			return user, nil
		}
		// stale entry
		if delErr := c.kv.Del(ctx, key); delErr != nil {
			logger.Log.WithError(delErr).Warn("Failed to drop stale user code entry")
		}
	case !errors.Is(err, ErrMiss):
		logger.Log.WithError(err).Warn("User code cache unavailable")
	}

	user, err := c.Users.GetByUserCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := c.kv.Set(ctx, key, user.ID, c.ttl); err != nil {
		logger.Log.WithError(err).Warn("Failed to cache user code")
	}
	return user, nil
}
