package cache

import (
	"context"
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/hl3mural/internal/domain"
)

type stubRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newStubRedis() *stubRedis {
	return &stubRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *stubRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if s.getErr != nil {
		return redis.NewStringResult("", s.getErr)
	}
	v, ok := s.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *stubRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	raw, _ := value.([]byte)
	s.values[key] = string(raw)
	s.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type stubMemcache struct {
	items  map[string]*memcache.Item
	getErr error
}

func (s *stubMemcache) Get(key string) (*memcache.Item, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	item, ok := s.items[key]
	if !ok {
		return nil, memcache.ErrCacheMiss
	}
	return item, nil
}

func (s *stubMemcache) Set(item *memcache.Item) error {
	s.items[item.Key] = item
	return nil
}

var testForms = []domain.Form{
	{ID: "f1", Name: "hl3-submissions", SiteID: "s1"},
	{ID: "f2", Name: "guestbook", SiteID: "s1"},
}

func TestRedisRoundTrip(t *testing.T) {
	rdb := newStubRedis()
	c := NewRedis(rdb, 30*time.Second)
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "k"); found || err != nil {
		t.Fatalf("expected clean miss got found=%v err=%v", found, err)
	}
	if err := c.Set(ctx, "k", testForms); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if rdb.ttls["k"] != 30*time.Second {
		t.Errorf("expected ttl 30s got %s", rdb.ttls["k"])
	}

	got, found, err := c.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("expected hit got found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(testForms, got); diff != "" {
		t.Fatalf("unexpected forms (-want +got):\n%s", diff)
	}
}

func TestRedisErrors(t *testing.T) {
	rdb := newStubRedis()
	rdb.values["corrupt"] = "{not json"
	c := NewRedis(rdb, time.Minute)

	if _, found, err := c.Get(context.Background(), "corrupt"); found || err == nil {
		t.Fatalf("expected decode error got found=%v err=%v", found, err)
	}

	rdb.getErr = errors.New("connection refused")
	if _, found, err := c.Get(context.Background(), "k"); found || err == nil {
		t.Fatalf("expected connection error got found=%v err=%v", found, err)
	}
}

func TestMemcachedRoundTrip(t *testing.T) {
	mc := &stubMemcache{items: map[string]*memcache.Item{}}
	c := NewMemcached(mc, 45*time.Second)
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "k"); found || err != nil {
		t.Fatalf("expected clean miss got found=%v err=%v", found, err)
	}
	if err := c.Set(ctx, "k", testForms); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if mc.items["k"].Expiration != 45 {
		t.Errorf("expected expiration 45 got %d", mc.items["k"].Expiration)
	}

	got, found, err := c.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("expected hit got found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(testForms, got); diff != "" {
		t.Fatalf("unexpected forms (-want +got):\n%s", diff)
	}

	mc.getErr = memcache.ErrServerError
	if _, found, err := c.Get(ctx, "k"); found || err == nil {
		t.Fatalf("expected server error got found=%v err=%v", found, err)
	}
}

func TestMemcachedSubSecondTTL(t *testing.T) {
	mc := &stubMemcache{items: map[string]*memcache.Item{}}
	c := NewMemcached(mc, 200*time.Millisecond)

	if err := c.Set(context.Background(), "k", testForms); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if mc.items["k"].Expiration != 1 {
		t.Fatalf("expected expiration rounded up to 1 got %d", mc.items["k"].Expiration)
	}
}
