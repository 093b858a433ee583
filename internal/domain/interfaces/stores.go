package interfaces

import domaintypes "asempv/internal/domain/types"

// TokenStore persists the token pair. Implementations must tolerate concurrent callers.
type TokenStore interface {
	LoadTokens() (domaintypes.TokenPair, bool, error)
	SaveTokens(pair domaintypes.TokenPair) error
	ClearTokens() error
}
