// Package httpclient builds the outbound *http.Client used for every backend call.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

type Config struct {
	// Connect bounds dialing and the TLS handshake.
	ConnectTimeout time.Duration
	// Read bounds the wait for response headers once the request is written.
	ReadTimeout time.Duration
	// Write is the budget for sending the request. net/http has no per-write
	// deadline on the client side, so it only contributes to the overall timeout.
	WriteTimeout time.Duration

	KeepAlive           time.Duration
	IdleConnTimeout     time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

func DefaultConfig() Config {
	return Config{
		ConnectTimeout:      30 * time.Second,
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        30 * time.Second,
		KeepAlive:           30 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
	}
}

// Total is the whole-exchange budget: connect, write and read back to back.
func (c Config) Total() time.Duration {
	return c.ConnectTimeout + c.WriteTimeout + c.ReadTimeout
}

// Middleware decorates a round tripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// New builds a client from cfg. Middlewares are applied in order, so the last
// one is outermost and sees the request first.
func New(cfg Config, mws ...Middleware) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	var rt http.RoundTripper = &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	for _, mw := range mws {
		if mw != nil {
			rt = mw(rt)
		}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Total(),
	}
}
