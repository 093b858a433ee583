// Package browse is a terminal list view over a paginated loader. Scrolling
// near the end of the list loads the next page; "r" refreshes from page 1.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"asempv/internal/netresult"
	"asempv/internal/observe"
)

// LoadMoreThreshold is how close to the last row the cursor must be before
// the next page is requested.
const LoadMoreThreshold = 3

// Source is the loader surface the browser drives.
type Source[T any] interface {
	LoadFirstPage(ctx context.Context)
	LoadNextPage(ctx context.Context)
	Refresh(ctx context.Context)
	CanLoadMore() bool
	SubscribeResults(buffer int) *observe.Subscription[netresult.Result[[]T]]
	SubscribeRefreshing(buffer int) *observe.Subscription[bool]
	SubscribeLoadingMore(buffer int) *observe.Subscription[bool]
}

type resultMsg[T any] struct{ res netresult.Result[[]T] }

type flagMsg struct {
	refreshing bool // which flag; false means loading-more
	on         bool
}

type closedMsg struct{}

// Model renders the items of a Source.
type Model[T any] struct {
	ctx    context.Context
	src    Source[T]
	render func(T) string
	title  string
	keys   KeyMap
	theme  Theme

	results     *observe.Subscription[netresult.Result[[]T]]
	refreshing  *observe.Subscription[bool]
	loadingMore *observe.Subscription[bool]

	items        []T
	status       netresult.Status
	err          *netresult.Error
	cursor       int
	height       int
	isRefreshing bool
	isLoadMore   bool
	spin         spinner.Model
}

// New subscribes to src. render formats one row.
func New[T any](ctx context.Context, src Source[T], title string, render func(T) string) Model[T] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model[T]{
		ctx:         ctx,
		src:         src,
		render:      render,
		title:       title,
		keys:        DefaultKeyMap(),
		theme:       DefaultTheme(),
		results:     src.SubscribeResults(observe.DefaultBuffer),
		refreshing:  src.SubscribeRefreshing(observe.DefaultBuffer),
		loadingMore: src.SubscribeLoadingMore(observe.DefaultBuffer),
		status:      netresult.StatusLoading,
		height:      20,
		spin:        sp,
	}
}

func (m Model[T]) Init() tea.Cmd {
	m.src.LoadFirstPage(m.ctx)
	return tea.Batch(
		m.spin.Tick,
		listen(m.results.C, func(r netresult.Result[[]T]) tea.Msg { return resultMsg[T]{res: r} }),
		listen(m.refreshing.C, func(v bool) tea.Msg { return flagMsg{refreshing: true, on: v} }),
		listen(m.loadingMore.C, func(v bool) tea.Msg { return flagMsg{on: v} }),
	)
}

// listen waits for the next value on ch.
func listen[V any](ch <-chan V, wrap func(V) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return wrap(v)
	}
}

func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[T]:
		m.apply(msg.res)
		return m, listen(m.results.C, func(r netresult.Result[[]T]) tea.Msg { return resultMsg[T]{res: r} })

	case flagMsg:
		if msg.refreshing {
			m.isRefreshing = msg.on
			return m, listen(m.refreshing.C, func(v bool) tea.Msg { return flagMsg{refreshing: true, on: v} })
		}
		m.isLoadMore = msg.on
		return m, listen(m.loadingMore.C, func(v bool) tea.Msg { return flagMsg{on: v} })

	case closedMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 3)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
		case key.Matches(msg, m.keys.End):
			m.cursor = max(len(m.items)-1, 0)
		case key.Matches(msg, m.keys.Refresh):
			m.src.Refresh(m.ctx)
			return m, nil
		case key.Matches(msg, m.keys.LoadMore):
			m.src.LoadNextPage(m.ctx)
			return m, nil
		}
		m.maybeLoadMore()
	}
	return m, nil
}

func (m *Model[T]) apply(res netresult.Result[[]T]) {
	m.status = res.Status()
	switch {
	case res.IsSuccess():
		m.items, _ = res.Data()
		m.err = nil
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}
	case res.IsError():
		m.err = res.Err()
	case res.IsLoading():
		// Rows stay visible until the new first page arrives.
		m.err = nil
	}
}

// maybeLoadMore requests the next page when the cursor nears the end.
func (m *Model[T]) maybeLoadMore() {
	if len(m.items) == 0 || m.cursor < len(m.items)-LoadMoreThreshold {
		return
	}
	if m.src.CanLoadMore() {
		m.src.LoadNextPage(m.ctx)
	}
}

func (m Model[T]) cancel() {
	m.results.Cancel()
	m.refreshing.Cancel()
	m.loadingMore.Cancel()
}

func (m Model[T]) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.title))
	b.WriteString(" ")
	b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("%d loaded", len(m.items))))
	if m.isRefreshing || m.status == netresult.StatusLoading {
		b.WriteString(" " + m.spin.View())
	}
	b.WriteString("\n\n")

	start := 0
	if m.cursor >= m.height {
		start = m.cursor - m.height + 1
	}
	end := min(start+m.height, len(m.items))
	for i := start; i < end; i++ {
		line := m.render(m.items[i])
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	switch {
	case m.isLoadMore:
		b.WriteString(m.spin.View() + " loading more\n")
	case m.err != nil:
		b.WriteString(m.theme.Error.Render(m.err.Message) + "\n")
	case m.status == netresult.StatusSuccess && len(m.items) == 0:
		b.WriteString(m.theme.Subtitle.Render("nothing here") + "\n")
	}

	b.WriteString("\n")
	var help []string
	for _, k := range m.keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(m.theme.Help.Render(strings.Join(help, " • ")))
	return b.String()
}

// Items returns the rows currently shown.
func (m Model[T]) Items() []T { return m.items }

// Cursor returns the selected row index.
func (m Model[T]) Cursor() int { return m.cursor }
