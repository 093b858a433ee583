package commands

import (
	"context"
	"time"

	"asempv/internal/pager"
)

// collect loads the first page, and every following page when all is set,
// and returns the accumulated items or the error that stopped it. Each page
// request gets its own perPage deadline; perPage <= 0 leaves ctx as is.
func collect[T any](ctx context.Context, l *pager.Loader[T], all bool, perPage time.Duration) ([]T, bool, error) {
	if err := settled(ctx, l, perPage, l.LoadFirstPage); err != nil {
		return nil, false, err
	}
	for all && l.CanLoadMore() {
		if err := settled(ctx, l, perPage, l.LoadNextPage); err != nil {
			st := l.State()
			return st.Items, st.HasNextPage, err
		}
	}
	st := l.State()
	return st.Items, st.HasNextPage, nil
}

// settled issues one load under a fresh deadline and waits for it.
func settled[T any](ctx context.Context, l *pager.Loader[T], perPage time.Duration, load func(context.Context)) error {
	if perPage > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, perPage)
		defer cancel()
	}
	load(ctx)
	l.Wait()
	return lastError(l)
}

func lastError[T any](l *pager.Loader[T]) error {
	sub := l.SubscribeResults(1)
	defer sub.Cancel()
	if r, ok := <-sub.C; ok {
		if e := r.Err(); e != nil {
			return e
		}
	}
	return nil
}
