package login

import (
	"context"
	"log/slog"
	"strings"

	"asempv/internal/domain"
	"asempv/internal/logging"
	"asempv/internal/netresult"
	"asempv/internal/observe"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"

	MsgEmptyUsername = "username must not be empty"
	MsgEmptyPassword = "password must not be empty"
)

// Authenticator is the part of the auth envelope the flow drives.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) netresult.Result[domain.TokenPair]
	IsLoggedIn() bool
}

// Flow is the login screen's state holder.
type Flow struct {
	auth    Authenticator
	log     *slog.Logger
	results observe.Feed[netresult.Result[domain.TokenPair]]
}

func NewFlow(auth Authenticator, log *slog.Logger) *Flow {
	return &Flow{auth: auth, log: logging.OrDiscard(log)}
}

// Submit trims both fields, validates them and, if they are acceptable, logs
// in with the trimmed values. Input that fails validation never reaches the
// network. The returned result is also published to subscribers.
func (f *Flow) Submit(ctx context.Context, username, password string) netresult.Result[domain.TokenPair] {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if e := validate(username, password); e != nil {
		f.log.Info("login.rejected", "field", e.Field)
		res := netresult.Failure[domain.TokenPair](e)
		f.results.Publish(res)
		return res
	}

	f.results.Publish(netresult.Loading[domain.TokenPair]())
	res := f.auth.Login(ctx, domain.Credentials{Username: domain.Username(username), Password: password})
	f.results.Publish(res)

	if res.IsSuccess() {
		f.log.Info("login.ok", "username", username)
	}
	return res
}

// SubscribeResults streams login outcomes, replaying the latest one.
func (f *Flow) SubscribeResults(buffer int) *observe.Subscription[netresult.Result[domain.TokenPair]] {
	return f.results.Subscribe(buffer)
}

func (f *Flow) IsLoggedIn() bool { return f.auth.IsLoggedIn() }

// Close ends every subscription.
func (f *Flow) Close() { f.results.Close() }

func validate(username, password string) *netresult.Error {
	if username == "" {
		return netresult.Validation(FieldUsername, MsgEmptyUsername)
	}
	if password == "" {
		return netresult.Validation(FieldPassword, MsgEmptyPassword)
	}
	return nil
}
