package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStoreConfig holds configuration for the session store
type SessionStoreConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

type session struct {
	selection *ComparisonSelection
	lastSeen  time.Time
}

// SessionStore owns one ComparisonSelection per browser session.
// Selections live in memory only and are dropped once a session goes idle.
type SessionStore struct {
	mutex       sync.Mutex
	sessions    map[string]*session
	idleTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewSessionStore creates a session store and starts its idle sweeper
func NewSessionStore(config SessionStoreConfig, logger *zap.Logger) *SessionStore {
	idle := config.IdleTimeout
	if idle <= 0 {
		idle = 24 * time.Hour
	}
	sweep := config.SweepInterval
	if sweep <= 0 {
		sweep = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store := &SessionStore{
		sessions:    make(map[string]*session),
		idleTimeout: idle,
		now:         time.Now,
		logger:      logger,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	go store.sweepLoop(sweep)
	return store
}

// NewSessionID issues a fresh opaque session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// Selection returns the session's selection, creating an empty one on first use
func (s *SessionStore) Selection(sessionID string) *ComparisonSelection {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{selection: NewComparisonSelection()}
		s.sessions[sessionID] = sess
		s.logger.Debug("comparison session created", zap.String("session", sessionID))
	}
	sess.lastSeen = s.now()
	return sess.selection
}

// Drop forgets a session
func (s *SessionStore) Drop(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the idle timeout.
// Returns the number of sessions removed.
func (s *SessionStore) Sweep() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-s.idleTimeout)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Close stops the sweeper goroutine; it is safe to call more than once
func (s *SessionStore) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *SessionStore) sweepLoop(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Debug("expired comparison sessions", zap.Int("removed", removed))
			}
		}
	}
}
