// Package safecall runs one remote call and folds every way it can end into a
// netresult.Result. Nothing escapes Call: transport failures, non-2xx statuses,
// empty bodies, returned errors and panics all become the Error variant.
//
// There are no retries at this layer.
package safecall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	"asempv/internal/domain"
	"asempv/internal/logging"
	"asempv/internal/netresult"
)

// Op performs exactly one round trip. A non-nil error means no response was received.
type Op[T any] func(ctx context.Context) (domain.Response[T], error)

// Call executes op and normalizes its outcome. name is used for logging only.
func Call[T any](ctx context.Context, log *slog.Logger, name string, op Op[T]) (res netresult.Result[T]) {
	log = logging.OrDiscard(log)

	defer func() {
		if r := recover(); r != nil {
			log.Error("safecall.panic", "call", name, "panic", fmt.Sprint(r))
			res = netresult.Failure[T](netresult.Unexpected(fmt.Sprint(r)))
		}
	}()

	if op == nil {
		return netresult.Failure[T](netresult.Unexpected("nil operation"))
	}

	resp, err := op(ctx)
	if err != nil {
		if IsTransport(err) {
			log.Warn("safecall.transport_failure", "call", name, "err", err)
			return netresult.Failure[T](netresult.Transport())
		}
		log.Error("safecall.unexpected", "call", name, "err", err)
		return netresult.Failure[T](netresult.Unexpected(err.Error()))
	}

	if !resp.Successful() {
		reason := resp.Reason
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		log.Warn("safecall.server_error", "call", name, "status", resp.StatusCode)
		return netresult.Failure[T](netresult.Server(resp.StatusCode, reason))
	}

	if resp.Body == nil {
		log.Warn("safecall.empty_response", "call", name, "status", resp.StatusCode)
		return netresult.Failure[T](netresult.EmptyResponse(resp.StatusCode))
	}

	log.Debug("safecall.ok", "call", name, "status", resp.StatusCode)
	return netresult.Success(*resp.Body)
}

// IsTransport reports whether err is a connectivity failure: DNS, dial, reset,
// timeout, a cancelled or expired context, or a truncated stream.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
