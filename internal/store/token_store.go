package store

import (
	"path/filepath"
	"sync"

	"asempv/internal/domain"
)

const tokensFilename = "tokens.json"

// TokenFileStore persists the token pair as plain JSON.
type TokenFileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewTokenFileStore returns a TokenFileStore rooted at dir.
func NewTokenFileStore(dir string) *TokenFileStore {
	return &TokenFileStore{dir: dir}
}

// LoadTokens reads the token file. A missing file means no tokens.
func (s *TokenFileStore) LoadTokens() (domain.TokenPair, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pair domain.TokenPair
	found, err := readJSON(s.path(), &pair)
	if err != nil {
		return domain.TokenPair{}, false, err
	}
	return pair, found, nil
}

// SaveTokens overwrites the token file.
func (s *TokenFileStore) SaveTokens(pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path(), pair, 0o600)
}

// ClearTokens removes the token file.
func (s *TokenFileStore) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(s.path())
}

func (s *TokenFileStore) path() string { return filepath.Join(s.dir, tokensFilename) }

// Compile-time assertion that TokenFileStore implements domain.TokenStore.
var _ domain.TokenStore = (*TokenFileStore)(nil)
