package store

import (
	"sync"

	"bandbook/internal/util"
)

// MemorySessionStore keeps session tokens in-process. Sessions do not
// survive a restart, matching the in-memory storage variant.
type MemorySessionStore struct {
	mu   sync.RWMutex
	sess map[string]string // token -> user ID
}

// NewMemorySessionStore initializes an empty session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sess: make(map[string]string)}
}

// NewSession creates a session token for a user.
func (s *MemorySessionStore) NewSession(userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := util.NewID()
	s.sess[token] = userID
	return token, nil
}

// GetUserIDByToken resolves a token to its user ID.
func (s *MemorySessionStore) GetUserIDByToken(token string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uid, ok := s.sess[token]
	return uid, ok, nil
}

// DeleteSession removes a token mapping; unknown tokens are a no-op.
func (s *MemorySessionStore) DeleteSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sess, token)
	return nil
}
