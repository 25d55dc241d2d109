package forms

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDraftStore persists drafts in Redis with a TTL so abandoned forms age
// out instead of accumulating.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func (s *RedisDraftStore) Save(ctx context.Context, key string, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, s.ttl).Err()
}

func (s *RedisDraftStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Corrupt blob: treat as no draft rather than blocking the form.
		return nil, nil
	}
	return &snap, nil
}

func (s *RedisDraftStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
