// Package cache stores the forms directory of the provider, keyed per
// credential. Submissions are never cached.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/hl3mural/internal/domain"
	"github.com/totegamma/hl3mural/internal/infra/repository"
)

// Memory is an in-process cache. Each replica keeps its own copy.
type Memory struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]domain.Form, bool, error) {
	cached, found := m.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	stored := cached.([]domain.Form)
	forms := make([]domain.Form, len(stored))
	copy(forms, stored)
	return forms, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, forms []domain.Form) error {
	stored := make([]domain.Form, len(forms))
	copy(stored, forms)
	m.cache.Set(key, stored, m.ttl)
	return nil
}

// RedisClient is the part of *redis.Client the cache uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis shares the directory between replicas.
type Redis struct {
	rdb RedisClient
	ttl time.Duration
}

func NewRedis(rdb RedisClient, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]domain.Form, bool, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	var forms []domain.Form
	if err := json.Unmarshal(raw, &forms); err != nil {
		return nil, false, errors.Wrap(err, "decode cached forms")
	}
	return forms, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, forms []domain.Form) error {
	raw, err := json.Marshal(forms)
	if err != nil {
		return errors.Wrap(err, "encode forms")
	}
	return errors.Wrap(r.rdb.Set(ctx, key, raw, r.ttl).Err(), "redis set")
}

// MemcacheClient is the part of *memcache.Client the cache uses.
type MemcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
}

// Memcached shares the directory between replicas.
type Memcached struct {
	mc  MemcacheClient
	ttl time.Duration
}

func NewMemcached(mc MemcacheClient, ttl time.Duration) *Memcached {
	return &Memcached{mc: mc, ttl: ttl}
}

func (m *Memcached) Get(ctx context.Context, key string) ([]domain.Form, bool, error) {
	item, err := m.mc.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "memcached get")
	}
	var forms []domain.Form
	if err := json.Unmarshal(item.Value, &forms); err != nil {
		return nil, false, errors.Wrap(err, "decode cached forms")
	}
	return forms, true, nil
}

func (m *Memcached) Set(ctx context.Context, key string, forms []domain.Form) error {
	raw, err := json.Marshal(forms)
	if err != nil {
		return errors.Wrap(err, "encode forms")
	}
	seconds := int32(m.ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return errors.Wrap(m.mc.Set(&memcache.Item{Key: key, Value: raw, Expiration: seconds}), "memcached set")
}

var (
	_ RedisClient    = (*redis.Client)(nil)
	_ MemcacheClient = (*memcache.Client)(nil)

	_ repository.FormCache = (*Memory)(nil)
	_ repository.FormCache = (*Redis)(nil)
	_ repository.FormCache = (*Memcached)(nil)
)
