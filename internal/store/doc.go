// Package store provides persistence for the client's credentials.
//
// It contains concrete implementations of domain.TokenStore. All methods are
// concurrency-safe via internal locking. Files live under the configured home
// directory and are written atomically (temp file, then rename) with 0600
// permissions.
//
// The package includes:
//   - MemoryTokenStore: process-local, nothing touches disk
//   - TokenFileStore: plain JSON token file
//   - SealedTokenFileStore: token file sealed with a passphrase-derived key
//     (scrypt + ChaCha20-Poly1305)
package store
