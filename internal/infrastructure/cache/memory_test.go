package cache

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/cableworks/storefront/internal/domain"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	cache := NewMemoryCache(time.Hour)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value []byte
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve raw bytes",
			key:   "catalog:0:product:cat6",
			value: []byte(`{"id":"cat6"}`),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store empty value",
			key:   "catalog:0:products",
			value: []byte{},
			ttl:   1 * time.Minute,
		},
		{
			name:  "store with short TTL",
			key:   "short",
			value: []byte("expires-soon"),
			ttl:   1 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			// For short TTL test, wait for expiration
			if tt.ttl < 10*time.Millisecond {
				time.Sleep(10 * time.Millisecond)
				if _, err := cache.Get(ctx, tt.key); !errors.Is(err, domain.ErrCacheMiss) {
					t.Errorf("Expected cache miss after expiration, got error = %v", err)
				}
				return
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !bytes.Equal(got, tt.value) {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	value := []byte("original")
	if err := cache.Set(ctx, "k", value, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "original" {
		t.Errorf("Get() = %q after caller mutation, want %q", got, "original")
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("Get() = %q after result mutation, want %q", again, "original")
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "non-existent-key")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	key := "delete-test"
	if err := cache.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if _, err := cache.Get(ctx, key); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "exists-test")
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v; want false, nil", exists, err)
	}

	_ = cache.Set(ctx, "exists-test", []byte("value"), time.Minute)
	exists, err = cache.Exists(ctx, "exists-test")
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v; want true, nil", exists, err)
	}

	_ = cache.Set(ctx, "short-ttl", []byte("value"), time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	exists, _ = cache.Exists(ctx, "short-ttl")
	if exists {
		t.Errorf("Exists() = true, want false after expiration")
	}
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "live", []byte("1"), time.Minute)
	_ = cache.Set(ctx, "dead", []byte("2"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	cache.removeExpired()

	if size := cache.Size(); size != 1 {
		t.Errorf("Size() = %d, want 1 after sweep", size)
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := string(rune('a' + i))
		if err := cache.Set(ctx, key, []byte{byte(i)}, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	if size := cache.Size(); size != 5 {
		t.Fatalf("Size() = %d, want 5", size)
	}

	cache.Clear()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := string(rune('a' + id))
			if err := cache.Set(ctx, key, []byte{byte(id)}, time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_Close(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := NewMemoryCache(time.Millisecond)
	time.Sleep(3 * time.Millisecond)

	if err := cache.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestMemoryCache_ConcurrentClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	cache := NewMemoryCache(time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := cache.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		}()
	}
	wg.Wait()
}
