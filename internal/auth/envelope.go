package auth

import (
	"context"
	"log/slog"
	"net/http"

	"asempv/internal/domain"
	"asempv/internal/logging"
	"asempv/internal/netresult"
	"asempv/internal/safecall"
)

// Envelope manages the token pair on behalf of every call site.
//
// The TokenStore is the single source of truth and the only writer path;
// Envelope reads it fresh on every operation.
type Envelope struct {
	store domain.TokenStore
	api   domain.AuthAPI
	log   *slog.Logger
}

// NewEnvelope returns an Envelope over store and the backend auth endpoints.
func NewEnvelope(store domain.TokenStore, api domain.AuthAPI, log *slog.Logger) *Envelope {
	return &Envelope{store: store, api: api, log: logging.OrDiscard(log)}
}

// Decorate attaches the current access token to req, if there is one.
func (e *Envelope) Decorate(req *http.Request) *http.Request {
	return Decorate(e.store, e.log, req)
}

// Login exchanges creds for a token pair and stores it on success.
// On error the store is left untouched.
func (e *Envelope) Login(ctx context.Context, creds domain.Credentials) netresult.Result[domain.TokenPair] {
	res := safecall.Call(ctx, e.log, "auth.login", func(ctx context.Context) (domain.Response[domain.TokenPair], error) {
		return e.api.Login(ctx, creds)
	})
	return e.persist("login", res)
}

// Refresh exchanges the stored refresh token for a new pair. Without a refresh
// token it fails immediately and makes no call. On error the store is left
// untouched; forcing a logout is the caller's decision.
func (e *Envelope) Refresh(ctx context.Context) netresult.Result[domain.TokenPair] {
	pair, ok, err := e.store.LoadTokens()
	if err != nil {
		e.log.Error("auth.refresh.load_failed", "err", err)
		return netresult.Failure[domain.TokenPair](netresult.Unexpected("reading tokens: " + err.Error()))
	}
	if !ok || !pair.HasRefresh() {
		return netresult.Failure[domain.TokenPair](netresult.NotAuthenticated(netresult.MsgMissingRefreshToken))
	}

	res := safecall.Call(ctx, e.log, "auth.refresh", func(ctx context.Context) (domain.Response[domain.TokenPair], error) {
		return e.api.Refresh(ctx, pair.RefreshToken)
	})
	return e.persist("refresh", res)
}

// Logout clears the stored tokens. It never touches the network.
func (e *Envelope) Logout() error {
	if err := e.store.ClearTokens(); err != nil {
		e.log.Error("auth.logout.failed", "err", err)
		return err
	}
	e.log.Info("auth.logout")
	return nil
}

// IsLoggedIn reports whether an access token is stored. Local and synchronous.
func (e *Envelope) IsLoggedIn() bool {
	pair, ok, err := e.store.LoadTokens()
	if err != nil {
		e.log.Warn("auth.is_logged_in.load_failed", "err", err)
		return false
	}
	return ok && pair.HasAccess()
}

func (e *Envelope) persist(op string, res netresult.Result[domain.TokenPair]) netresult.Result[domain.TokenPair] {
	pair, ok := res.Data()
	if !ok {
		return res
	}
	if err := e.store.SaveTokens(pair); err != nil {
		e.log.Error("auth."+op+".save_failed", "err", err)
		return netresult.Failure[domain.TokenPair](netresult.Unexpected("saving tokens: " + err.Error()))
	}
	e.log.Info("auth." + op + ".ok")
	return res
}

// Compile-time assertion that Envelope can gate data loads.
var _ domain.LoginGate = (*Envelope)(nil)
