package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"live-market/internal/domain/stream"
	"live-market/internal/domain/user"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - profile:{user_id} - public user projection
// - stream:{stream_id} - stream metadata, messages are never cached

type CacheConfig struct {
	ProfileTTL time.Duration
	StreamTTL  time.Duration
}

// CacheStore stores JSON snapshots in Redis. A miss returns (nil, nil).
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	return &CacheStore{
		client: client,
		config: config,
	}
}

func profileKey(id uint64) string {
	return fmt.Sprintf("profile:%d", id)
}

func streamKey(id uint64) string {
	return fmt.Sprintf("stream:%d", id)
}

func (c *CacheStore) GetProfile(ctx context.Context, id uint64) (*user.Profile, error) {
	var p user.Profile
	ok, err := c.getJSON(ctx, profileKey(id), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (c *CacheStore) SetProfile(ctx context.Context, p user.Profile) error {
	return c.setJSON(ctx, profileKey(p.ID), p, c.config.ProfileTTL)
}

func (c *CacheStore) GetStream(ctx context.Context, id uint64) (*stream.Stream, error) {
	var s stream.Stream
	ok, err := c.getJSON(ctx, streamKey(id), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (c *CacheStore) SetStream(ctx context.Context, s stream.Stream) error {
	return c.setJSON(ctx, streamKey(s.ID), s, c.config.StreamTTL)
}

func (c *CacheStore) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CacheStore) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}
