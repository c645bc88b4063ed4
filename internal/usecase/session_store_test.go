package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func newTestSessionStore(t *testing.T, idle time.Duration) *SessionStore {
	t.Helper()
	store := NewSessionStore(SessionStoreConfig{IdleTimeout: idle, SweepInterval: time.Hour}, nil)
	t.Cleanup(store.Close)
	return store
}

func TestSessionStore_SelectionIsPerSession(t *testing.T) {
	store := newTestSessionStore(t, time.Hour)

	a := store.Selection("session-a")
	a.Add(product("x"))

	assert.Same(t, a, store.Selection("session-a"))
	assert.Zero(t, store.Selection("session-b").Len())
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_Drop(t *testing.T) {
	store := newTestSessionStore(t, time.Hour)

	store.Selection("s").Add(product("x"))
	store.Drop("s")

	assert.Zero(t, store.Len())
	assert.Zero(t, store.Selection("s").Len(), "dropped session starts empty")
}

func TestSessionStore_Sweep(t *testing.T) {
	store := newTestSessionStore(t, 30*time.Minute)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	setNow := func(ts time.Time) {
		store.mutex.Lock()
		store.now = func() time.Time { return ts }
		store.mutex.Unlock()
	}

	setNow(base)
	store.Selection("stale")
	setNow(base.Add(20 * time.Minute))
	store.Selection("fresh")

	setNow(base.Add(40 * time.Minute))
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	// Touching a session keeps it alive.
	store.Selection("fresh")
	setNow(base.Add(65 * time.Minute))
	assert.Zero(t, store.Sweep())
}

func TestSessionStore_CloseStopsSweeper(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewSessionStore(SessionStoreConfig{SweepInterval: time.Millisecond}, nil)
	store.Selection("s")
	time.Sleep(5 * time.Millisecond)

	store.Close()
	store.Close()
}

func TestNewSessionID(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestSessionStore_ConcurrentClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewSessionStore(SessionStoreConfig{SweepInterval: time.Millisecond}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, store.Close)
		}()
	}
	wg.Wait()
}
