// Package pager drives incremental page loading for one logical list.
//
// A Loader accumulates items across pages in server order, tracks whether more
// pages exist, and refuses to start a second page request while one is in
// flight. LoadFirstPage and Refresh start a new session: the list is cleared
// and page 1 is requested. Every request remembers the session it was issued
// in; a response that settles after its session has been superseded is
// discarded instead of being appended to the new list.
//
// Each triggered load runs as one goroutine performing one round trip. State
// changes and publication happen under the loader's mutex, so observers see
// transitions in settlement order. Observers subscribe to three feeds:
// results (Loading/Success/Error with the whole accumulated list), refreshing,
// and loading-more.
package pager
