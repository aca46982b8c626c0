package aqicache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
)

// ValkeyStore shares ratings across server instances through Valkey.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "aqi"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (aqi.Rating, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return aqi.Rating{}, false, nil
		}
		return aqi.Rating{}, false, err
	}
	var rating aqi.Rating
	if err := json.Unmarshal([]byte(payload), &rating); err != nil {
		return aqi.Rating{}, false, fmt.Errorf("decode cached rating: %w", err)
	}
	return rating, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, rating aqi.Rating, ttl time.Duration) error {
	payload, err := json.Marshal(rating)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:rating:%s", s.prefix, key)
}

var _ aqi.Cache = (*ValkeyStore)(nil)
