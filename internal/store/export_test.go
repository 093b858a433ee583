package store

// UseCheapKDF lowers the scrypt cost so tests stay fast.
func UseCheapKDF(s *SealedTokenFileStore) { s.kdf = kdfParams{N: 1 << 10, R: 8, P: 1} }
