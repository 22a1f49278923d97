package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	values map[string]string
	setErr error
	getErr error
	delErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}}
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if f.setErr != nil {
		return false, f.setErr
	}
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, exists := f.values[key]
	if !exists {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) error {
	if f.delErr != nil {
		return f.delErr
	}
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisLockAcquireAndRelease(t *testing.T) {
	store := newFakeRedis()
	lock, err := NewRedisLock(store, "pp:test:lock", 0)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected acquire, ok=%v err=%v", ok, err)
	}
	if _, exists := store.values["pp:test:lock"]; !exists {
		t.Fatal("expected lock key in store")
	}

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, exists := store.values["pp:test:lock"]; exists {
		t.Fatal("expected lock key removed")
	}
}

func TestRedisLockContention(t *testing.T) {
	store := newFakeRedis()
	first, _ := NewRedisLock(store, "pp:test:lock", 0)
	second, _ := NewRedisLock(store, "pp:test:lock", 0)

	if ok, _ := first.Acquire(context.Background()); !ok {
		t.Fatal("expected first acquire to win")
	}
	if ok, _ := second.Acquire(context.Background()); ok {
		t.Fatal("expected second acquire to lose")
	}
}

func TestRedisLockReleaseOnlyOwnLock(t *testing.T) {
	store := newFakeRedis()
	first, _ := NewRedisLock(store, "pp:test:lock", 0)
	if ok, _ := first.Acquire(context.Background()); !ok {
		t.Fatal("expected acquire")
	}

	// Another instance's value replaces ours after a TTL expiry.
	store.values["pp:test:lock"] = "someone-else"
	if err := first.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if store.values["pp:test:lock"] != "someone-else" {
		t.Fatal("release must not delete a lock it no longer owns")
	}
}

func TestRedisLockReleaseWithoutAcquireIsNoOp(t *testing.T) {
	store := newFakeRedis()
	lock, _ := NewRedisLock(store, "pp:test:lock", 0)
	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func TestRedisLockAcquirePropagatesErrors(t *testing.T) {
	store := newFakeRedis()
	store.setErr = errors.New("redis down")
	lock, _ := NewRedisLock(store, "pp:test:lock", 0)
	if _, err := lock.Acquire(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
