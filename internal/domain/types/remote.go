package types

// Response is the outcome of one HTTP exchange that reached the server.
//
// Body is nil when the server sent no body or a body that could not be decoded.
type Response[T any] struct {
	StatusCode int
	Reason     string
	Body       *T
}

// Successful reports a 2xx status.
func (r Response[T]) Successful() bool { return r.StatusCode/100 == 2 }
