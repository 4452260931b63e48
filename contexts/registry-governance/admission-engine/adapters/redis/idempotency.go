package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"solon/contexts/registry-governance/admission-engine/ports"

	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "admission:idem:"

// NewClient builds a redis client from a connection URL.
func NewClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// IdempotencyStore keeps idempotency records in redis, leaning on native TTL
// expiry instead of a sweeper.
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

func (s *IdempotencyStore) GetRecord(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	raw, err := s.client.Get(ctx, idempotencyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ports.IdempotencyRecord{}, false, nil
	}
	if err != nil {
		return ports.IdempotencyRecord{}, false, err
	}
	var record ports.IdempotencyRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return ports.IdempotencyRecord{}, false, err
	}
	if !record.ExpiresAt.After(now) {
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *IdempotencyStore) PutRecord(ctx context.Context, record ports.IdempotencyRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, idempotencyPrefix+record.Key, payload, ttl).Err()
}
