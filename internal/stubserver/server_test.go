package stubserver_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"asempv/internal/auth"
	"asempv/internal/backend"
	"asempv/internal/domain"
	"asempv/internal/httpclient"
	"asempv/internal/netresult"
	"asempv/internal/services/inverters"
	"asempv/internal/store"
	"asempv/internal/stubserver"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stack struct {
	env *auth.Envelope
	svc *inverters.Service
	api *backend.Client
	ts  *store.MemoryTokenStore
}

func newStack(t *testing.T, f stubserver.Fixtures) stack {
	t.Helper()
	srv, err := stubserver.New(f, stubserver.Options{BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("stub: %v", err)
	}
	hs := httptest.NewServer(srv.Handler())
	t.Cleanup(hs.Close)

	ts := store.NewMemoryTokenStore()
	hc := httpclient.New(httpclient.DefaultConfig(), auth.WithBearer(ts, nil))
	api, err := backend.New(hs.URL, hc, nil)
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	env := auth.NewEnvelope(ts, api, nil)
	svc := inverters.New(api, env, inverters.Options{}, nil)
	return stack{env: env, svc: svc, api: api, ts: ts}
}

func login(t *testing.T, s stack, user, pass string) {
	t.Helper()
	if res := s.env.Login(context.Background(), domain.Credentials{Username: domain.Username(user), Password: pass}); !res.IsSuccess() {
		t.Fatalf("login: %+v", res.Err())
	}
}

func TestLoadFixtures(t *testing.T) {
	f, err := stubserver.LoadFixtures("testdata/fixtures.yml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Users) != 1 || len(f.Inverters) != 2 || f.SamplesPerInverter != 8 {
		t.Fatalf("fixtures = %+v", f)
	}
	if b := f.Inverters[0].BatterySize; b == nil || *b != 12.5 {
		t.Fatalf("battery size = %v", b)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newStack(t, stubserver.DefaultFixtures(3))

	res := s.env.Login(context.Background(), domain.Credentials{Username: "demo", Password: "nope"})
	if e := res.Err(); e == nil || e.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %+v", e)
	}
	if s.env.IsLoggedIn() {
		t.Fatal("logged in after rejection")
	}
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	s := newStack(t, stubserver.DefaultFixtures(3))

	resp, err := s.api.FetchDashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestInverterListPagesEndToEnd(t *testing.T) {
	s := newStack(t, stubserver.DefaultFixtures(45))
	login(t, s, "demo", "demo")

	l := s.svc.NewInverterLoader(domain.InverterFilters{})
	defer l.Close()
	ctx := context.Background()
	l.LoadFirstPage(ctx)
	l.Wait()
	for l.CanLoadMore() {
		l.LoadNextPage(ctx)
		l.Wait()
	}

	st := l.State()
	if len(st.Items) != 45 || st.CurrentPage != 3 || st.HasNextPage {
		t.Fatalf("%d items, page %d, next %v", len(st.Items), st.CurrentPage, st.HasNextPage)
	}
	for i, inv := range st.Items {
		if want := domain.InverterID(45 - i); inv.ID != want {
			t.Fatalf("item %d id = %d, want %d", i, inv.ID, want)
		}
	}
}

func TestFiltersAndDetails(t *testing.T) {
	f, err := stubserver.LoadFixtures("testdata/fixtures.yml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := newStack(t, f)
	login(t, s, "operator", "s3cret")
	ctx := context.Background()

	minPower := 20.0
	resp, err := s.api.FetchInverters(ctx, domain.PageQuery{Page: 1, PageSize: 20}, domain.InverterFilters{MinPower: &minPower})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.Body == nil || len(resp.Body.Items) != 1 || resp.Body.Items[0].Title != "Field station" {
		t.Fatalf("filtered page = %+v", resp.Body)
	}

	inv, ok := s.svc.Inverter(ctx, 1).Data()
	if !ok || inv.City.Title != "Kyiv" || inv.LatestData == "" {
		t.Fatalf("inverter = %+v", inv)
	}
	if res := s.svc.Inverter(ctx, 99); res.Err() == nil || res.Err().Code != http.StatusNotFound {
		t.Fatalf("want 404, got %+v", res.Err())
	}
	if res := s.svc.Statistics(ctx, 1, domain.PeriodMonth); !res.IsSuccess() {
		t.Fatalf("statistics: %+v", res.Err())
	}

	stats, ok := s.svc.Dashboard(ctx, "escoua").Data()
	if !ok || stats.TotalInverters != 1 || stats.TotalPower != 10 {
		t.Fatalf("dashboard = %+v", stats)
	}

	el := s.svc.NewEnergyDataLoader(1, domain.EnergyDataQuery{Types: []string{"pv_power"}})
	defer el.Close()
	el.LoadFirstPage(ctx)
	el.Wait()
	got := el.State().Items
	if len(got) != 4 {
		t.Fatalf("energy samples = %d, want 4", len(got))
	}
	for _, d := range got {
		if d.DataTypeKey != "pv_power" {
			t.Fatalf("unfiltered sample %+v", d)
		}
	}

	dt, ok := s.svc.DataType(ctx, 2).Data()
	if !ok || dt.FoundKey == nil || *dt.FoundKey != "battery_soc" {
		t.Fatalf("data type = %+v", dt)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	s := newStack(t, stubserver.DefaultFixtures(1))
	login(t, s, "demo", "demo")
	before, _, _ := s.ts.LoadTokens()

	if res := s.env.Refresh(context.Background()); !res.IsSuccess() {
		t.Fatalf("refresh: %+v", res.Err())
	}
	after, _, _ := s.ts.LoadTokens()
	if after.AccessToken == before.AccessToken || after.RefreshToken == before.RefreshToken {
		t.Fatal("tokens not rotated")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	s := newStack(t, stubserver.DefaultFixtures(1))
	login(t, s, "demo", "demo")
	pair, _, _ := s.ts.LoadTokens()

	resp, err := s.api.Refresh(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestLogoutStopsLoads(t *testing.T) {
	s := newStack(t, stubserver.DefaultFixtures(5))
	login(t, s, "demo", "demo")
	if err := s.env.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	l := s.svc.NewInverterLoader(domain.InverterFilters{})
	defer l.Close()
	sub := l.SubscribeResults(2)
	l.LoadFirstPage(context.Background())
	l.Wait()
	if r := <-sub.C; !netresult.IsKind(r.Err(), netresult.KindNotAuthenticated) {
		t.Fatalf("want not authenticated, got %+v", r.Err())
	}
}

func TestPaginationLinks(t *testing.T) {
	srv, err := stubserver.New(stubserver.DefaultFixtures(25), stubserver.Options{BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("stub: %v", err)
	}
	h := srv.Handler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v2/auth/login/", strings.NewReader(`{"username":"demo","password":"demo"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	var tokens struct{ Access string }
	if err := json.Unmarshal(w.Body.Bytes(), &tokens); err != nil || tokens.Access == "" {
		t.Fatalf("login reply %s", w.Body.String())
	}

	get := func(target string) (int, map[string]any) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer "+tokens.Access)
		h.ServeHTTP(w, req)
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		return w.Code, body
	}

	code, body := get("/api/v2/inverters/?page=2&page_size=10")
	if code != http.StatusOK || body["next"] == nil || body["previous"] == nil {
		t.Fatalf("page 2: %d %v", code, body)
	}
	code, body = get("/api/v2/inverters/?page=3&page_size=10")
	if code != http.StatusOK || body["next"] != nil || len(body["results"].([]any)) != 5 {
		t.Fatalf("page 3: %d %v", code, body)
	}
	if code, _ = get("/api/v2/inverters/?page=4&page_size=10"); code != http.StatusNotFound {
		t.Fatalf("page 4 status = %d", code)
	}
}

func TestServeAndShutdown(t *testing.T) {
	srv, err := stubserver.New(stubserver.DefaultFixtures(1), stubserver.Options{BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("stub: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	api, err := backend.New("http://"+ln.Addr().String(), nil, nil)
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	var resp domain.Response[domain.TokenPair]
	for i := 0; i < 50; i++ {
		if resp, err = api.Login(context.Background(), domain.Credentials{Username: "demo", Password: "demo"}); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil || resp.Body == nil {
		t.Fatalf("login over the wire: %v %+v", err, resp)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-served; err != nil {
		t.Fatalf("serve: %v", err)
	}
}
