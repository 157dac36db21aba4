package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	identity  Identity
	expiresAt time.Time
}

// MemoryStore is an in-memory Store with TTL-based expiry. Expired entries
// are reaped lazily on lookup; sessions do not survive process restarts.
type MemoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	sessions map[string]entry
}

// NewMemoryStore creates a MemoryStore whose sessions live for ttl,
// matching the client cookie's MaxAge.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]entry),
	}
}

// Create issues a new opaque token bound to the given identity.
func (s *MemoryStore) Create(identity Identity) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = entry{
		identity:  identity,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

// Get resolves a token to its identity. Expired sessions are removed and
// treated as absent.
func (s *MemoryStore) Get(token string) (Identity, bool) {
	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Identity{}, false
	}

	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return Identity{}, false
	}
	return e.identity, true
}

// Destroy invalidates a token. Unknown tokens are ignored.
func (s *MemoryStore) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// newToken returns 32 bytes of cryptographic randomness, hex-encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
