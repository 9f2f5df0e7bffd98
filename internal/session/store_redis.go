package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"go-storefront-admin/internal/model"
)

// RedisStore keeps the session under one key with a TTL.
type RedisStore struct {
	db  *redis.Client
	key string
	ttl time.Duration
}

func NewRedisStore(db *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{db: db, key: key, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context) (*model.SessionData, error) {
	var data model.SessionData
	err := r.db.Get(ctx, r.key).Scan(&data)
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "error while reading session from redis")
	}
	return &data, nil
}

func (r *RedisStore) Save(ctx context.Context, data *model.SessionData) error {
	if err := r.db.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "error while writing session to redis")
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.db.Del(ctx, r.key).Err(); err != nil {
		return errors.Wrap(err, "error while deleting session from redis")
	}
	return nil
}
