package kv

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps slots as plain string keys.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedis wraps a redis client; keys are namespaced under prefix.
func NewRedis(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "careercraft:slot:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, owner, key string) (string, error) {
	if err := validate(owner, key); err != nil {
		return "", err
	}
	val, err := s.client.Get(ctx, s.key(owner, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get")
	}
	return val, nil
}

func (s *RedisStore) Put(ctx context.Context, owner, key, value string) error {
	if err := validate(owner, key); err != nil {
		return err
	}
	return errors.Wrap(s.client.Set(ctx, s.key(owner, key), value, 0).Err(), "redis set")
}

func (s *RedisStore) Delete(ctx context.Context, owner, key string) error {
	if err := validate(owner, key); err != nil {
		return err
	}
	return errors.Wrap(s.client.Del(ctx, s.key(owner, key)).Err(), "redis del")
}

func (s *RedisStore) key(owner, key string) string {
	return s.prefix + owner + ":" + key
}

var _ Store = (*RedisStore)(nil)
