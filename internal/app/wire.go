package app

import (
	"fmt"
	"net/http"

	"asempv/internal/auth"
	"asempv/internal/backend"
	"asempv/internal/domain"
	"asempv/internal/httpclient"
	"asempv/internal/logging"
	"asempv/internal/services/inverters"
	"asempv/internal/services/login"
	"asempv/internal/store"
)

// Wire bundles the stores, clients and services for the CLI.
type Wire struct {
	Tokens    domain.TokenStore
	HTTP      *http.Client
	API       *backend.Client
	Auth      *auth.Envelope
	Login     *login.Flow
	Inverters *inverters.Service
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	log := logging.OrDiscard(cfg.Log)

	tokens := cfg.Tokens
	if tokens == nil {
		var err error
		if tokens, err = newTokenStore(cfg); err != nil {
			return nil, err
		}
	}

	// Bearer injection is outermost so the logging transport sees the header.
	mws := []httpclient.Middleware{
		httpclient.WithLogging(log),
		auth.WithBearer(tokens, log),
	}
	if cfg.HTTP == (httpclient.Config{}) {
		cfg.HTTP = httpclient.DefaultConfig()
	}
	httpClient := httpclient.New(cfg.HTTP, mws...)

	api, err := backend.New(cfg.BaseURL, httpClient, log)
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}

	env := auth.NewEnvelope(tokens, api, log)

	return &Wire{
		Tokens:    tokens,
		HTTP:      httpClient,
		API:       api,
		Auth:      env,
		Login:     login.NewFlow(env, log),
		Inverters: inverters.New(api, env, cfg.Inverters, log),
	}, nil
}

func newTokenStore(cfg Config) (domain.TokenStore, error) {
	if cfg.Home == "" {
		return store.NewMemoryTokenStore(), nil
	}
	if cfg.TokenPassphrase != "" {
		return store.NewSealedTokenFileStore(cfg.Home, cfg.TokenPassphrase)
	}
	return store.NewTokenFileStore(cfg.Home), nil
}
