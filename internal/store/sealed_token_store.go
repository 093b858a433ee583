package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"

	"asempv/internal/domain"
)

const sealedTokensFilename = "tokens.json.enc"

// ErrEmptyPassphrase is returned when a sealed store is built without a passphrase.
var ErrEmptyPassphrase = errors.New("token passphrase must not be empty")

// SealedTokenFileStore persists the token pair encrypted under a passphrase.
//
// The file is decrypted at most once; the pair is then served from memory
// until the next save or clear. Writes by other processes are not observed.
type SealedTokenFileStore struct {
	dir        string
	passphrase string
	kdf        kdfParams

	mu     sync.Mutex
	cached bool
	pair   domain.TokenPair
	has    bool
}

// NewSealedTokenFileStore returns a SealedTokenFileStore rooted at dir.
func NewSealedTokenFileStore(dir, passphrase string) (*SealedTokenFileStore, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &SealedTokenFileStore{dir: dir, passphrase: passphrase, kdf: defaultKDFParams()}, nil
}

// LoadTokens returns the cached pair, decrypting the token file on the first
// call. A missing file means no tokens.
func (s *SealedTokenFileStore) LoadTokens() (domain.TokenPair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached {
		return s.pair, s.has, nil
	}

	b, err := readFile(s.path())
	if err != nil {
		return domain.TokenPair{}, false, err
	}
	if b == nil {
		s.remember(domain.TokenPair{}, false)
		return domain.TokenPair{}, false, nil
	}
	pt, err := open(s.passphrase, b)
	if err != nil {
		return domain.TokenPair{}, false, err
	}
	var pair domain.TokenPair
	if err := json.Unmarshal(pt, &pair); err != nil {
		return domain.TokenPair{}, false, err
	}
	s.remember(pair, true)
	return pair, true, nil
}

// SaveTokens seals and writes the token pair.
func (s *SealedTokenFileStore) SaveTokens(pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	ct, err := seal(s.passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	s.cached = false
	if err := writeFile(s.path(), ct, 0o600); err != nil {
		return err
	}
	s.remember(pair, true)
	return nil
}

// ClearTokens removes the token file.
func (s *SealedTokenFileStore) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = false
	if err := removeFile(s.path()); err != nil {
		return err
	}
	s.remember(domain.TokenPair{}, false)
	return nil
}

// remember caches the decrypted state. Callers hold s.mu.
func (s *SealedTokenFileStore) remember(pair domain.TokenPair, has bool) {
	s.cached, s.pair, s.has = true, pair, has
}

func (s *SealedTokenFileStore) path() string { return filepath.Join(s.dir, sealedTokensFilename) }

// Compile-time assertion that SealedTokenFileStore implements domain.TokenStore.
var _ domain.TokenStore = (*SealedTokenFileStore)(nil)
