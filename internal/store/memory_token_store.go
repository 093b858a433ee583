package store

import (
	"sync"

	"asempv/internal/domain"
)

// MemoryTokenStore keeps the token pair in process memory only.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens domain.TokenPair
	ok     bool
}

// NewMemoryTokenStore returns an empty store.
func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

// LoadTokens returns the stored pair, if any.
func (s *MemoryTokenStore) LoadTokens() (domain.TokenPair, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, s.ok, nil
}

// SaveTokens replaces the stored pair.
func (s *MemoryTokenStore) SaveTokens(pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens, s.ok = pair, true
	return nil
}

// ClearTokens forgets the stored pair.
func (s *MemoryTokenStore) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens, s.ok = domain.TokenPair{}, false
	return nil
}

// Compile-time assertion that MemoryTokenStore implements domain.TokenStore.
var _ domain.TokenStore = (*MemoryTokenStore)(nil)
