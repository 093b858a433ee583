package app

import (
	"log/slog"

	"asempv/internal/domain"
	"asempv/internal/httpclient"
	"asempv/internal/services/inverters"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home    string // data directory, e.g. $HOME/.asempv
	BaseURL string // backend base URL, e.g. https://asempv.escoua.com/

	// TokenPassphrase seals the token file when set; otherwise tokens are
	// stored as plain JSON with 0600 permissions.
	TokenPassphrase string

	HTTP      httpclient.Config
	Inverters inverters.Options

	Log *slog.Logger

	// Tokens overrides the store chosen from Home and TokenPassphrase.
	Tokens domain.TokenStore
}
