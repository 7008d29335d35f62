package cart

import (
	"sync"
	"time"
)

// Sessions keeps one Engine per POS session. Each engine is only ever touched
// while its session lock is held; idle sessions expire after the TTL.
type Sessions struct {
	entries     map[string]*sessionEntry
	mu          sync.RWMutex
	ttl         time.Duration
	cleanupTick time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

type sessionEntry struct {
	mu       sync.Mutex
	engine   *Engine
	lastSeen time.Time
}

// SessionsConfig holds configuration for the session registry
type SessionsConfig struct {
	TTL             time.Duration // how long an idle session is kept
	CleanupInterval time.Duration // how often idle sessions are swept; 0 disables the sweeper
}

// NewSessions creates a session registry and starts its cleanup loop
func NewSessions(cfg SessionsConfig) *Sessions {
	s := &Sessions{
		entries:     make(map[string]*sessionEntry),
		ttl:         cfg.TTL,
		cleanupTick: cfg.CleanupInterval,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	if s.cleanupTick > 0 {
		go s.cleanupLoop()
	}
	return s
}

// getEntry returns the entry for a session, creating it on first use
func (s *Sessions) getEntry(id string) *sessionEntry {
	s.mu.RLock()
	entry, exists := s.entries[id]
	s.mu.RUnlock()

	if exists {
		s.mu.Lock()
		entry.lastSeen = s.now()
		s.mu.Unlock()
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double check after acquiring write lock
	if entry, exists := s.entries[id]; exists {
		entry.lastSeen = s.now()
		return entry
	}

	entry = &sessionEntry{engine: New(), lastSeen: s.now()}
	s.entries[id] = entry
	return entry
}

// With runs fn against the session's engine while holding the session lock.
// Operations on one session are serialized; different sessions run in parallel.
func (s *Sessions) With(id string, fn func(e *Engine) error) error {
	for {
		entry := s.getEntry(id)
		entry.mu.Lock()
		if s.isLive(id, entry) {
			defer entry.mu.Unlock()
			return fn(entry.engine)
		}
		// swept while waiting for the lock; retry against the current entry
		entry.mu.Unlock()
	}
}

func (s *Sessions) isLive(id string, entry *sessionEntry) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id] == entry
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup loop
func (s *Sessions) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Sessions) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup drops sessions idle for longer than the TTL
func (s *Sessions) cleanup() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	cutoff := s.now().Add(-s.ttl)
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
