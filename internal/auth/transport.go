package auth

import (
	"log/slog"
	"net/http"

	"asempv/internal/domain"
	"asempv/internal/logging"
)

// Decorate returns req with a bearer credential when store holds an access
// token, and req itself otherwise. req is never modified.
func Decorate(store domain.TokenStore, log *slog.Logger, req *http.Request) *http.Request {
	if store == nil {
		return req
	}
	pair, ok, err := store.LoadTokens()
	if err != nil {
		logging.OrDiscard(log).Warn("auth.decorate.load_failed", "err", err)
		return req
	}
	if !ok || !pair.HasAccess() {
		return req
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	return out
}

// Transport decorates every request with the stored access token.
type Transport struct {
	Base  http.RoundTripper
	Store domain.TokenStore
	Log   *slog.Logger
}

// WithBearer returns a middleware installing Transport in front of a round tripper.
func WithBearer(store domain.TokenStore, log *slog.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(base http.RoundTripper) http.RoundTripper {
		return &Transport{Base: base, Store: store, Log: log}
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(Decorate(t.Store, t.Log, req))
}
