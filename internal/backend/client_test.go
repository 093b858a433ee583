package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"asempv/internal/backend"
	"asempv/internal/domain"
	"asempv/internal/netresult"
	"asempv/internal/safecall"
)

type recorded struct {
	method string
	path   string
	query  map[string][]string
	body   map[string]string
	reqID  string
}

func serve(t *testing.T, status int, reply string) (*backend.Client, *[]recorded) {
	t.Helper()
	var seen []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			reqID:  r.Header.Get(backend.HeaderRequestID),
		}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		seen = append(seen, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	c, err := backend.New(srv.URL, srv.Client(), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return c, &seen
}

func TestLogin_SendsCredentialsAndMapsTokens(t *testing.T) {
	c, seen := serve(t, http.StatusOK, `{"access":"acc","refresh":"ref"}`)

	resp, err := c.Login(context.Background(), domain.Credentials{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Body == nil || resp.Body.AccessToken != "acc" || resp.Body.RefreshToken != "ref" {
		t.Fatalf("body = %+v", resp.Body)
	}
	got := (*seen)[0]
	if got.method != http.MethodPost || got.path != "/api/v2/auth/login/" {
		t.Fatalf("request = %s %s", got.method, got.path)
	}
	if got.body["username"] != "alice" || got.body["password"] != "pw" {
		t.Fatalf("sent body %v", got.body)
	}
	if got.reqID == "" {
		t.Fatal("missing request id")
	}
}

func TestRefresh_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	c, seen := serve(t, http.StatusOK, `{"access":"new"}`)

	resp, err := c.Refresh(context.Background(), "r1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if (*seen)[0].body["refresh"] != "r1" {
		t.Fatalf("sent body %v", (*seen)[0].body)
	}
	if resp.Body.AccessToken != "new" || resp.Body.RefreshToken != "r1" {
		t.Fatalf("pair = %+v", resp.Body)
	}
}

func TestFetchInverters_QueryAndPage(t *testing.T) {
	c, seen := serve(t, http.StatusOK, `{
		"count": 45,
		"next": "https://example.test/api/v2/inverters/?page=2",
		"previous": null,
		"results": [{"id": 7, "title": "Roof", "battery_size": 10.5}]
	}`)

	city := 3
	minPower := 1.5
	resp, err := c.FetchInverters(context.Background(),
		domain.PageQuery{Page: 1, PageSize: 20, Ordering: "-id"},
		domain.InverterFilters{City: &city, MinPower: &minPower, Search: "kyiv"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	q := (*seen)[0].query
	want := map[string]string{
		"page": "1", "page_size": "20", "ordering": "-id",
		"city": "3", "min_power": "1.5", "search": "kyiv", "lang": "uk",
	}
	for k, v := range want {
		if got := q[k]; len(got) != 1 || got[0] != v {
			t.Fatalf("query %s = %v, want %s", k, got, v)
		}
	}
	if _, ok := q["region"]; ok {
		t.Fatal("unset filter sent")
	}

	p := resp.Body
	if p == nil || p.TotalCount != 45 || !p.HasNext || len(p.Items) != 1 {
		t.Fatalf("page = %+v", p)
	}
	if inv := p.Items[0]; inv.ID != 7 || inv.BatterySize == nil || *inv.BatterySize != 10.5 || inv.SolarMaxPower != nil {
		t.Fatalf("inverter = %+v", inv)
	}
}

func TestFetchInverters_LastPage(t *testing.T) {
	c, _ := serve(t, http.StatusOK, `{"count": 1, "next": null, "previous": null, "results": []}`)

	resp, err := c.FetchInverters(context.Background(), domain.PageQuery{Page: 3}, domain.InverterFilters{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.Body.HasNext || resp.Body.Items == nil {
		t.Fatalf("page = %+v", resp.Body)
	}
}

func TestFetchEnergyData_RepeatsTypes(t *testing.T) {
	c, seen := serve(t, http.StatusOK, `{"count":0,"next":null,"previous":null,"results":[]}`)

	_, err := c.FetchEnergyData(context.Background(), 9, domain.PageQuery{Page: 2, PageSize: 20},
		domain.EnergyDataQuery{Aggregation: "hour", Types: []string{"pv", "grid"}})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	got := (*seen)[0]
	if got.path != "/api/v2/inverters/9/data/" {
		t.Fatalf("path = %s", got.path)
	}
	if types := got.query["types[]"]; len(types) != 2 || types[0] != "pv" || types[1] != "grid" {
		t.Fatalf("types = %v", types)
	}
	if _, ok := got.query["page_size"]; ok {
		t.Fatal("page_size is not accepted by the data endpoint")
	}
}

func TestNon2xxCarriesStatusLine(t *testing.T) {
	c, _ := serve(t, http.StatusNotFound, `{"detail":"Not found."}`)

	resp, err := c.FetchInverter(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.StatusCode != 404 || resp.Reason != "Not Found" || resp.Body != nil {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestEmptySuccessHasNoBody(t *testing.T) {
	c, _ := serve(t, http.StatusOK, ``)

	resp, err := c.FetchDashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.StatusCode != 200 || resp.Body != nil {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestNullBodyIsEmpty(t *testing.T) {
	c, _ := serve(t, http.StatusOK, `null`)

	res := safecall.Call(context.Background(), nil, "inverters", func(ctx context.Context) (domain.Response[domain.Page[domain.Inverter]], error) {
		return c.FetchInverters(ctx, domain.PageQuery{Page: 1}, domain.InverterFilters{})
	})
	e := res.Err()
	if e == nil || e.Message != netresult.MsgEmptyResponse || e.Code != 200 {
		t.Fatalf("result = %+v, want empty response", res)
	}

	c, _ = serve(t, http.StatusOK, "null\n")
	resp, err := c.Login(context.Background(), domain.Credentials{Username: "a", Password: "b"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Body != nil {
		t.Fatalf("login body = %+v, want nil", resp.Body)
	}
}

func TestTransportFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := backend.New(url, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := c.FetchDashboard(context.Background(), ""); err == nil {
		t.Fatal("want transport error")
	}
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	if _, err := backend.New("asempv.local", nil, nil); err == nil {
		t.Fatal("want error for relative base")
	}
}
