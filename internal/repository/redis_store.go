package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-hall-console/internal/model"
)

// RedisStore keeps the whole collection as one JSON value under Key.
type RedisStore struct {
	rdb *redis.Client
	Key string
}

// NewRedisStore wraps an already connected client.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	return &RedisStore{rdb: rdb, Key: key}
}

// Load fetches the snapshot.  A missing key is an empty collection.
func (s *RedisStore) Load(ctx context.Context) (*model.Collection, error) {
	data, err := s.rdb.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.Key, err)
	}
	halls, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("redis key %s: %w", s.Key, err)
	}
	return halls, nil
}

// Save overwrites the snapshot.  The key never expires.
func (s *RedisStore) Save(ctx context.Context, halls *model.Collection) error {
	data, err := encodeSnapshot(halls, false)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key, err)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
