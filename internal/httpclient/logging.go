package httpclient

import (
	"log/slog"
	"net/http"
	"time"

	"asempv/internal/logging"
)

// LoggingTransport logs one line per round trip at debug level. Header values
// are never logged.
type LoggingTransport struct {
	Base http.RoundTripper
	Log  *slog.Logger
}

// WithLogging returns a Middleware that installs LoggingTransport.
func WithLogging(log *slog.Logger) Middleware {
	return func(base http.RoundTripper) http.RoundTripper {
		return &LoggingTransport{Base: base, Log: logging.OrDiscard(log)}
	}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	log := logging.OrDiscard(t.Log)

	start := time.Now()
	resp, err := base.RoundTrip(req)
	attrs := []any{
		"method", req.Method,
		"url", req.URL.Redacted(),
		"request_id", req.Header.Get("X-Request-ID"),
		"authorized", req.Header.Get("Authorization") != "",
		"duration", time.Since(start),
	}
	if err != nil {
		log.Debug("http.roundtrip.failed", append(attrs, "err", err)...)
		return nil, err
	}
	log.Debug("http.roundtrip", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}
