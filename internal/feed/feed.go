// Package feed implements the cursor-pagination state machine backing
// result screens: initial load, load-more, refresh, and stale-response
// discarding via a generation counter.
package feed

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/riox432/civitdeck/internal/models"
)

// Status is the lifecycle state of a feed.
type Status int

const (
	// StatusIdle is the state before the first load.
	StatusIdle Status = iota
	// StatusLoading is an initial load or refresh in flight.
	StatusLoading
	// StatusLoaded means a page has landed; HasMore tells whether
	// LoadMore can continue.
	StatusLoaded
	// StatusLoadingMore is an append fetch in flight.
	StatusLoadingMore
	// StatusError is a failed load. Previously loaded items remain
	// visible; Refresh leaves this state.
	StatusError
)

// State is a snapshot of the feed visible to callers.
type State[T any] struct {
	Items   []T
	Status  Status
	HasMore bool
	// Err is the repository's message verbatim, empty when healthy.
	Err string
}

// Fetcher loads one page. An empty cursor requests the first page.
type Fetcher[T any] func(ctx context.Context, cursor string) (models.PaginatedResult[T], error)

// Feed drives paginated loading for one logical screen. At most one load
// is in flight; stale completions are discarded by epoch comparison, so a
// late response from before a Refresh can never overwrite newer state.
type Feed[T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[T]
	epoch    atomic.Int64
	cancel   context.CancelFunc
	inFlight bool

	items   []T
	status  Status
	cursor  string
	hasMore bool
	errMsg  string
}

// New creates an idle feed over the given fetcher.
func New[T any](fetch Fetcher[T]) *Feed[T] {
	return &Feed[T]{fetch: fetch, status: StatusIdle}
}

// Snapshot returns a copy of the current state.
func (f *Feed[T]) Snapshot() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]T, len(f.items))
	copy(items, f.items)
	return State[T]{
		Items:   items,
		Status:  f.status,
		HasMore: f.hasMore,
		Err:     f.errMsg,
	}
}

// Refresh cancels any in-flight load, discards the continuation cursor,
// resets to empty and performs the initial load. Safe to call from any
// state.
func (f *Feed[T]) Refresh(ctx context.Context) State[T] {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	epoch := f.epoch.Inc()
	loadCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.inFlight = true
	f.items = nil
	f.cursor = ""
	f.hasMore = false
	f.errMsg = ""
	f.status = StatusLoading
	f.mu.Unlock()

	page, err := f.fetch(loadCtx, "")
	return f.apply(epoch, page, err, true)
}

// LoadMore fetches the next page and appends it. It is a no-op unless the
// feed is Loaded with more pages available and nothing is in flight.
func (f *Feed[T]) LoadMore(ctx context.Context) State[T] {
	f.mu.Lock()
	if f.status != StatusLoaded || !f.hasMore || f.inFlight {
		state := State[T]{Items: append([]T(nil), f.items...), Status: f.status, HasMore: f.hasMore, Err: f.errMsg}
		f.mu.Unlock()
		return state
	}
	epoch := f.epoch.Load()
	loadCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.inFlight = true
	cursor := f.cursor
	f.status = StatusLoadingMore
	f.mu.Unlock()

	page, err := f.fetch(loadCtx, cursor)
	return f.apply(epoch, page, err, false)
}

// apply commits a fetch result unless the feed has moved to a newer epoch,
// in which case the result is discarded.
func (f *Feed[T]) apply(epoch int64, page models.PaginatedResult[T], err error, replace bool) State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.epoch.Load() != epoch {
		// A Refresh superseded this load; drop the result.
		return State[T]{Items: append([]T(nil), f.items...), Status: f.status, HasMore: f.hasMore, Err: f.errMsg}
	}

	f.inFlight = false
	if f.cancel != nil {
		// The load finished; release its derived context.
		f.cancel()
		f.cancel = nil
	}

	if err != nil {
		// Non-destructive: keep whatever was loaded before.
		f.status = StatusError
		f.errMsg = err.Error()
	} else {
		if replace {
			f.items = page.Items
		} else {
			f.items = append(f.items, page.Items...)
		}
		f.cursor = page.Metadata.NextCursor
		f.hasMore = page.Metadata.HasMore()
		f.errMsg = ""
		f.status = StatusLoaded
	}

	items := make([]T, len(f.items))
	copy(items, f.items)
	return State[T]{Items: items, Status: f.status, HasMore: f.hasMore, Err: f.errMsg}
}
