package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bowlapp/storefront/internal/api/metrics"
)

const opTimeout = 3 * time.Second

// KVStore implements the persistence gateway contract on Redis. Per contract
// it never surfaces I/O errors: failed reads report the slot as absent,
// failed writes are logged and dropped.
type KVStore struct {
	client *redis.Client
	prefix string
	log    zerolog.Logger
}

// NewKVStore wraps an established Redis client. The prefix namespaces all
// slot keys (e.g. "bowlapp:").
func NewKVStore(client *redis.Client, prefix string, log zerolog.Logger) *KVStore {
	return &KVStore{client: client, prefix: prefix, log: log}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.StorageErrorsTotal.WithLabelValues("get").Inc()
			s.log.Warn().Err(err).Str("key", key).Msg("redis get failed, treating slot as absent")
		}
		return nil, false
	}
	return data, true
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("set").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("redis set failed, write dropped")
	}
}

func (s *KVStore) Remove(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("remove").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("redis del failed")
	}
}
