package login_test

import (
	"context"
	"net/http"
	"testing"

	"asempv/internal/auth"
	"asempv/internal/domain"
	"asempv/internal/netresult"
	"asempv/internal/services/login"
	"asempv/internal/store"
)

type countingAPI struct {
	calls int
	last  domain.Credentials
	resp  domain.Response[domain.TokenPair]
}

func (c *countingAPI) Login(_ context.Context, creds domain.Credentials) (domain.Response[domain.TokenPair], error) {
	c.calls++
	c.last = creds
	return c.resp, nil
}

func (c *countingAPI) Refresh(context.Context, string) (domain.Response[domain.TokenPair], error) {
	return c.resp, nil
}

func newFlow(api *countingAPI) (*login.Flow, *store.MemoryTokenStore) {
	ts := store.NewMemoryTokenStore()
	return login.NewFlow(auth.NewEnvelope(ts, api, nil), nil), ts
}

func TestSubmit_RejectsEmptyInputWithoutCalls(t *testing.T) {
	cases := []struct {
		name, user, pass, field string
	}{
		{"empty username", "", "x", login.FieldUsername},
		{"blank username", "   ", "x", login.FieldUsername},
		{"empty password", "alice", "", login.FieldPassword},
		{"blank password", "alice", " \t ", login.FieldPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &countingAPI{}
			flow, _ := newFlow(api)

			res := flow.Submit(context.Background(), tc.user, tc.pass)
			e := res.Err()
			if e == nil || e.Kind != netresult.KindValidation || e.Field != tc.field {
				t.Fatalf("want validation error on %s, got %+v", tc.field, e)
			}
			if api.calls != 0 {
				t.Fatalf("want 0 calls, got %d", api.calls)
			}
		})
	}
}

func TestSubmit_SuccessStoresTokensAndPublishes(t *testing.T) {
	pair := domain.TokenPair{AccessToken: "a", RefreshToken: "r"}
	api := &countingAPI{resp: domain.Response[domain.TokenPair]{StatusCode: http.StatusOK, Body: &pair}}
	flow, ts := newFlow(api)
	sub := flow.SubscribeResults(4)
	defer flow.Close()

	res := flow.Submit(context.Background(), "  alice ", " secret\n")
	if !res.IsSuccess() {
		t.Fatalf("login failed: %+v", res.Err())
	}
	if api.last.Username != "alice" || api.last.Password != "secret" {
		t.Fatalf("sent %+v", api.last)
	}
	if got, ok, _ := ts.LoadTokens(); !ok || got != pair {
		t.Fatalf("stored %+v", got)
	}
	if !flow.IsLoggedIn() {
		t.Fatal("should be logged in")
	}

	if r := <-sub.C; !r.IsLoading() {
		t.Fatalf("first publication = %v, want loading", r.Status())
	}
	if r := <-sub.C; !r.IsSuccess() {
		t.Fatalf("second publication = %v, want success", r.Status())
	}
}

func TestSubmit_ServerRejection(t *testing.T) {
	api := &countingAPI{resp: domain.Response[domain.TokenPair]{StatusCode: http.StatusUnauthorized, Reason: "Unauthorized"}}
	flow, ts := newFlow(api)

	res := flow.Submit(context.Background(), "alice", "wrong")
	e := res.Err()
	if e == nil || e.Code != 401 || e.Message != "server error: 401 Unauthorized" {
		t.Fatalf("got %+v", e)
	}
	if _, ok, _ := ts.LoadTokens(); ok {
		t.Fatal("tokens stored after rejection")
	}
	if flow.IsLoggedIn() {
		t.Fatal("should not be logged in")
	}
}
