package netresult

// Status discriminates the three variants of a Result.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Result is a closed union over Loading, Success(data) and Error(err).
// The zero value is Loading.
type Result[T any] struct {
	status Status
	data   T
	err    *Error
}

// Loading returns the Loading variant.
func Loading[T any]() Result[T] { return Result[T]{status: StatusLoading} }

// Success returns the Success variant carrying data.
func Success[T any](data T) Result[T] { return Result[T]{status: StatusSuccess, data: data} }

// Failure returns the Error variant. A nil err is promoted to an unexpected error
// so the variant always carries a payload.
func Failure[T any](err *Error) Result[T] {
	if err == nil {
		err = Unexpected("missing error")
	}
	return Result[T]{status: StatusError, err: err}
}

// Status returns the active variant.
func (r Result[T]) Status() Status { return r.status }

func (r Result[T]) IsLoading() bool { return r.status == StatusLoading }
func (r Result[T]) IsSuccess() bool { return r.status == StatusSuccess }
func (r Result[T]) IsError() bool   { return r.status == StatusError }

// Data returns the payload of a Success; ok is false for the other variants.
func (r Result[T]) Data() (data T, ok bool) {
	if r.status != StatusSuccess {
		var zero T
		return zero, false
	}
	return r.data, true
}

// Err returns the payload of an Error, or nil.
func (r Result[T]) Err() *Error {
	if r.status != StatusError {
		return nil
	}
	return r.err
}

// Match dispatches on the active variant. Every handler is required.
func Match[T, R any](
	r Result[T],
	onLoading func() R,
	onSuccess func(T) R,
	onError func(*Error) R,
) R {
	switch r.status {
	case StatusSuccess:
		return onSuccess(r.data)
	case StatusError:
		return onError(r.err)
	default:
		return onLoading()
	}
}

// Map converts the Success payload and passes the other variants through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	switch r.status {
	case StatusSuccess:
		return Success(fn(r.data))
	case StatusError:
		return Failure[U](r.err)
	default:
		return Loading[U]()
	}
}
