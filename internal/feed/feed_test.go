package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/models"
)

func page(cursor string, ids ...int64) (models.PaginatedResult[int64], error) {
	return models.PaginatedResult[int64]{
		Items:    append([]int64{}, ids...),
		Metadata: models.PageMetadata{NextCursor: cursor},
	}, nil
}

// pagedFetcher serves page one for an empty cursor and page two for "c1".
func pagedFetcher(calls *int64) Fetcher[int64] {
	return func(ctx context.Context, cursor string) (models.PaginatedResult[int64], error) {
		atomic.AddInt64(calls, 1)
		if cursor == "" {
			return page("c1", 1, 2)
		}
		return page("", 3)
	}
}

func TestRefresh_LoadsFirstPage(t *testing.T) {
	var calls int64
	f := New(pagedFetcher(&calls))

	assert.Equal(t, StatusIdle, f.Snapshot().Status)

	state := f.Refresh(context.Background())
	assert.Equal(t, StatusLoaded, state.Status)
	assert.Equal(t, []int64{1, 2}, state.Items)
	assert.True(t, state.HasMore)
	assert.Empty(t, state.Err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestLoadMore_AppendsNextPage(t *testing.T) {
	var calls int64
	f := New(pagedFetcher(&calls))

	f.Refresh(context.Background())
	state := f.LoadMore(context.Background())

	assert.Equal(t, StatusLoaded, state.Status)
	assert.Equal(t, []int64{1, 2, 3}, state.Items)
	assert.False(t, state.HasMore, "terminal page has no cursor")

	// Nothing left; further LoadMore calls never hit the fetcher.
	state = f.LoadMore(context.Background())
	assert.Equal(t, []int64{1, 2, 3}, state.Items)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestLoadMore_NoopBeforeFirstLoad(t *testing.T) {
	var calls int64
	f := New(pagedFetcher(&calls))

	state := f.LoadMore(context.Background())
	assert.Equal(t, StatusIdle, state.Status)
	assert.Empty(t, state.Items)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestRefresh_ResetsCursorAndItems(t *testing.T) {
	var calls int64
	f := New(pagedFetcher(&calls))

	f.Refresh(context.Background())
	f.LoadMore(context.Background())
	state := f.Refresh(context.Background())

	assert.Equal(t, []int64{1, 2}, state.Items, "refresh starts over from page one")
	assert.True(t, state.HasMore)
}

func TestRefresh_SupersedesInFlightLoad(t *testing.T) {
	release := make(chan struct{})
	var calls int64
	f := New(func(ctx context.Context, cursor string) (models.PaginatedResult[int64], error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			<-release
			return page("", 999)
		}
		return page("", 1)
	})

	first := make(chan State[int64], 1)
	go func() { first <- f.Refresh(context.Background()) }()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) == 1
	}, time.Second, time.Millisecond)

	second := f.Refresh(context.Background())
	assert.Equal(t, []int64{1}, second.Items)

	close(release)
	stale := <-first

	// The superseded load must not overwrite the newer state.
	assert.Equal(t, []int64{1}, stale.Items)
	assert.Equal(t, []int64{1}, f.Snapshot().Items)
}

func TestRefresh_ReleasesLoadContext(t *testing.T) {
	var loadCtx context.Context
	f := New(func(ctx context.Context, cursor string) (models.PaginatedResult[int64], error) {
		loadCtx = ctx
		return page("", 1)
	})

	f.Refresh(context.Background())

	// The completed load's derived context must be released, not leaked
	// until the parent ends.
	require.NotNil(t, loadCtx)
	assert.ErrorIs(t, loadCtx.Err(), context.Canceled)
}

func TestLoadMore_ErrorKeepsLoadedItems(t *testing.T) {
	f := New(func(ctx context.Context, cursor string) (models.PaginatedResult[int64], error) {
		if cursor == "" {
			return page("c1", 1, 2)
		}
		return models.PaginatedResult[int64]{}, errors.New("status 502")
	})

	f.Refresh(context.Background())
	state := f.LoadMore(context.Background())

	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, "status 502", state.Err)
	assert.Equal(t, []int64{1, 2}, state.Items, "failed page load keeps prior items")
}

func TestRefresh_RecoversFromError(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	f := New(func(ctx context.Context, cursor string) (models.PaginatedResult[int64], error) {
		if fail.Load() {
			return models.PaginatedResult[int64]{}, errors.New("boom")
		}
		return page("", 7)
	})

	state := f.Refresh(context.Background())
	assert.Equal(t, StatusError, state.Status)

	fail.Store(false)
	state = f.Refresh(context.Background())
	assert.Equal(t, StatusLoaded, state.Status)
	assert.Equal(t, []int64{7}, state.Items)
	assert.Empty(t, state.Err)
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	f := New(pagedFetcher(new(int64)))
	f.Refresh(context.Background())

	snap := f.Snapshot()
	snap.Items[0] = 42

	assert.Equal(t, []int64{1, 2}, f.Snapshot().Items)
}
