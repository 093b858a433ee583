package httpclient_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"asempv/internal/httpclient"
)

func TestDefaultConfig_ThirtySecondBounds(t *testing.T) {
	cfg := httpclient.DefaultConfig()
	if cfg.ConnectTimeout != 30*time.Second || cfg.ReadTimeout != 30*time.Second || cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if httpclient.New(cfg).Timeout != 90*time.Second {
		t.Fatalf("total timeout should be the sum of the three bounds")
	}
}

func TestClient_ReadTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := httpclient.DefaultConfig()
	cfg.ReadTimeout = 20 * time.Millisecond
	client := httpclient.New(cfg)

	resp, err := client.Get(server.URL)
	if err == nil {
		resp.Body.Close()
		t.Fatalf("expected timeout error")
	}
}

func TestLoggingTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := httpclient.New(httpclient.DefaultConfig(), httpclient.WithLogging(log))

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/x", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	out := buf.String()
	if !strings.Contains(out, `"status":418`) {
		t.Fatalf("expected status in log, got %s", out)
	}
	if strings.Contains(out, "secret") {
		t.Fatalf("token leaked into log: %s", out)
	}
}
