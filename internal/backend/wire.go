package backend

import "asempv/internal/domain"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// tokenResponse is returned by both login and refresh. Refresh may omit the
// refresh token when the server does not rotate it.
type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p paginated[T]) page() domain.Page[T] {
	items := p.Results
	if items == nil {
		items = []T{}
	}
	return domain.Page[T]{Items: items, TotalCount: p.Count, HasNext: p.Next != nil}
}

// mapBody converts a decoded wire body while keeping the status line.
func mapBody[W, T any](in domain.Response[W], f func(W) T) domain.Response[T] {
	out := domain.Response[T]{StatusCode: in.StatusCode, Reason: in.Reason}
	if in.Body != nil {
		v := f(*in.Body)
		out.Body = &v
	}
	return out
}

func pageOf[T any](in domain.Response[paginated[T]]) domain.Response[domain.Page[T]] {
	return mapBody(in, paginated[T].page)
}
