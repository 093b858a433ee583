package pager

import (
	"context"
	"log/slog"
	"sync"

	"asempv/internal/domain"
	"asempv/internal/logging"
	"asempv/internal/netresult"
	"asempv/internal/observe"
	"asempv/internal/safecall"
)

const (
	DefaultPageSize = 20
	DefaultOrdering = "-id"
)

// FetchFunc requests one page. Filters are bound by the caller.
type FetchFunc[T any] func(ctx context.Context, query domain.PageQuery) (domain.Response[domain.Page[T]], error)

// Config fixes the page size and ordering for every request of a loader.
type Config struct {
	Name     string
	PageSize int
	Ordering string
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "list"
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Ordering == "" {
		c.Ordering = DefaultOrdering
	}
	return c
}

// State is a snapshot of a loader.
type State[T any] struct {
	Items          []T
	CurrentPage    int
	HasNextPage    bool
	LoadInProgress bool
}

// Loader owns the accumulated list of one logical list. It is safe for
// concurrent use.
type Loader[T any] struct {
	fetch FetchFunc[T]
	gate  domain.LoginGate
	cfg   Config
	log   *slog.Logger

	mu       sync.Mutex
	items    []T
	page     int
	hasNext  bool
	inFlight bool
	session  uint64
	closed   bool
	pending  int
	idle     *sync.Cond

	results     observe.Feed[netresult.Result[[]T]]
	refreshing  observe.Feed[bool]
	loadingMore observe.Feed[bool]
}

// New returns an idle loader. gate is consulted before every request.
func New[T any](fetch FetchFunc[T], gate domain.LoginGate, cfg Config, log *slog.Logger) *Loader[T] {
	cfg = cfg.withDefaults()
	l := &Loader[T]{
		fetch:   fetch,
		gate:    gate,
		cfg:     cfg,
		log:     logging.OrDiscard(log).With("list", cfg.Name),
		hasNext: true,
	}
	l.idle = sync.NewCond(&l.mu)
	return l
}

// LoadFirstPage starts a new session and requests page 1.
func (l *Loader[T]) LoadFirstPage(ctx context.Context) { l.restart(ctx, false) }

// Refresh is LoadFirstPage that also raises the refreshing flag until the
// page-1 request settles.
func (l *Loader[T]) Refresh(ctx context.Context) { l.restart(ctx, true) }

func (l *Loader[T]) restart(ctx context.Context, refreshing bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if !l.loggedIn() {
		if refreshing {
			clearFlag(&l.refreshing)
		}
		return
	}

	l.session++
	l.items = nil
	l.page = 0
	l.hasNext = true
	l.inFlight = true

	if refreshing {
		l.refreshing.Publish(true)
	}
	// A superseded load-more will never settle into this session.
	clearFlag(&l.loadingMore)
	l.results.Publish(netresult.Loading[[]T]())

	l.log.Debug("pager.session.start", "session", l.session, "refresh", refreshing)
	l.issue(ctx, l.session, 1)
}

// LoadNextPage requests the page after the last loaded one. It does nothing
// while a request is in flight or when the server reported no further pages.
func (l *Loader[T]) LoadNextPage(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || !l.hasNext || l.inFlight {
		return
	}
	if !l.loggedIn() {
		return
	}

	l.inFlight = true
	l.loadingMore.Publish(true)
	l.issue(ctx, l.session, l.page+1)
}

// CanLoadMore reports hasNextPage && !loadInProgress.
func (l *Loader[T]) CanLoadMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasNext && !l.inFlight
}

// State returns a copy of the loader state.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State[T]{
		Items:          cloneItems(l.items),
		CurrentPage:    l.page,
		HasNextPage:    l.hasNext,
		LoadInProgress: l.inFlight,
	}
}

// SubscribeResults streams the list result. The latest value is replayed.
func (l *Loader[T]) SubscribeResults(buffer int) *observe.Subscription[netresult.Result[[]T]] {
	return l.results.Subscribe(buffer)
}

// SubscribeRefreshing streams the pull-to-refresh flag.
func (l *Loader[T]) SubscribeRefreshing(buffer int) *observe.Subscription[bool] {
	return l.refreshing.Subscribe(buffer)
}

// SubscribeLoadingMore streams the load-more flag.
func (l *Loader[T]) SubscribeLoadingMore(buffer int) *observe.Subscription[bool] {
	return l.loadingMore.Subscribe(buffer)
}

// Wait blocks until no request is pending. Loads issued while it waits are
// waited for as well.
func (l *Loader[T]) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.pending > 0 {
		l.idle.Wait()
	}
}

// Close stops publication and closes all subscriptions. Requests already in
// flight run to completion and their results are dropped.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.results.Close()
	l.refreshing.Close()
	l.loadingMore.Close()
}

// loggedIn publishes the not-authenticated error when the gate is closed.
// Callers hold l.mu.
func (l *Loader[T]) loggedIn() bool {
	if l.gate == nil || l.gate.IsLoggedIn() {
		return true
	}
	l.log.Warn("pager.not_authenticated")
	l.results.Publish(netresult.Failure[[]T](netresult.NotAuthenticated(netresult.MsgNotAuthenticated)))
	return false
}

// issue starts the round trip for page in session. Callers hold l.mu.
func (l *Loader[T]) issue(ctx context.Context, session uint64, page int) {
	query := domain.PageQuery{Page: page, PageSize: l.cfg.PageSize, Ordering: l.cfg.Ordering}
	l.log.Debug("pager.page.request", "session", session, "page", page)

	l.pending++
	go func() {
		res := safecall.Call(ctx, l.log, "pager."+l.cfg.Name, func(ctx context.Context) (domain.Response[domain.Page[T]], error) {
			return l.fetch(ctx, query)
		})
		l.settle(session, page, res)
	}()
}

func (l *Loader[T]) settle(session uint64, page int, res netresult.Result[domain.Page[T]]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.done()

	if l.closed {
		l.log.Debug("pager.result.dropped_after_close", "session", session, "page", page)
		return
	}
	if session != l.session {
		l.log.Info("pager.result.stale", "session", session, "current", l.session, "page", page)
		return
	}

	l.inFlight = false
	netresult.Match(res,
		func() struct{} { return struct{}{} },
		func(p domain.Page[T]) struct{} {
			l.items = append(l.items, p.Items...)
			l.page = page
			l.hasNext = p.HasNext
			l.log.Debug("pager.page.loaded",
				"page", page, "received", len(p.Items), "total", len(l.items), "has_next", p.HasNext)
			l.results.Publish(netresult.Success(cloneItems(l.items)))
			return struct{}{}
		},
		func(e *netresult.Error) struct{} {
			l.log.Warn("pager.page.failed", "page", page, "kind", string(e.Kind), "err", e.Message)
			l.results.Publish(netresult.Failure[[]T](e))
			return struct{}{}
		},
	)
	clearFlag(&l.refreshing)
	clearFlag(&l.loadingMore)
}

// done retires one pending request. Callers hold l.mu.
func (l *Loader[T]) done() {
	l.pending--
	if l.pending == 0 {
		l.idle.Broadcast()
	}
}

// clearFlag publishes false if the flag is currently raised.
func clearFlag(f *observe.Feed[bool]) {
	if v, _ := f.Latest(); v {
		f.Publish(false)
	}
}

func cloneItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
