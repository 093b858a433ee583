package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"asempv/internal/domain"
	"asempv/internal/logging"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://asempv.escoua.com/"

// HeaderRequestID correlates a request with server-side logs.
const HeaderRequestID = "X-Request-ID"

// Client talks to the backend over HTTP. Authentication is the transport's
// concern, see auth.Transport.
type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
}

// New parses base and returns a client. A nil hc uses http.DefaultClient.
func New(base string, hc *http.Client, log *slog.Logger) (*Client, error) {
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("backend: base url must be absolute: " + base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: u, http: hc, log: logging.OrDiscard(log)}, nil
}

// BaseURL returns the normalized base the client resolves paths against.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func getJSON[T any](ctx context.Context, c *Client, path string, q url.Values) (domain.Response[T], error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return domain.Response[T]{}, err
	}
	req.Header.Set("Accept", "application/json")
	return do[T](c, req)
}

func postJSON[T any](ctx context.Context, c *Client, path string, in any) (domain.Response[T], error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return domain.Response[T]{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), buf)
	if err != nil {
		return domain.Response[T]{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return do[T](c, req)
}

func do[T any](c *Client, req *http.Request) (domain.Response[T], error) {
	id := uuid.NewString()
	req.Header.Set(HeaderRequestID, id)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Response[T]{}, err
	}
	defer resp.Body.Close()

	out := domain.Response[T]{StatusCode: resp.StatusCode, Reason: reason(resp)}
	if out.Successful() {
		var body *T
		switch err := json.NewDecoder(resp.Body).Decode(&body); {
		case err == nil && body != nil:
			out.Body = body
		case err == nil, errors.Is(err, io.EOF):
			c.log.Debug("backend.empty_body", "request_id", id, "path", req.URL.Path)
		default:
			// A body cut off mid-stream is a transport failure, not an empty reply.
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return domain.Response[T]{}, err
			}
			c.log.Warn("backend.decode_failed", "request_id", id, "path", req.URL.Path, "err", err)
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return out, nil
}

// reason is the reason phrase of the status line, e.g. "Not Found".
func reason(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if r := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); r != "" {
		return r
	}
	return http.StatusText(resp.StatusCode)
}

var (
	_ domain.AuthAPI     = (*Client)(nil)
	_ domain.InverterAPI = (*Client)(nil)
)
