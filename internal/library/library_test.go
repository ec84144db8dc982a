package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riox432/civitdeck/internal/db"
	"github.com/riox432/civitdeck/internal/models"
)

func testLibrary(t *testing.T) *Library {
	t.Helper()
	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return New(database)
}

func sampleModel(id int64, name string) *models.Model {
	return &models.Model{
		ID:   id,
		Name: name,
		Type: models.ModelTypeCheckpoint,
		Creator: &models.Creator{
			Username: "artist",
		},
	}
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	var zero T
	return zero
}

func TestToggleFavorite_NotifiesObservers(t *testing.T) {
	l := testLibrary(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := l.ObserveFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, recv(t, ch), "seed snapshot is the current empty list")

	on, err := l.ToggleFavorite(sampleModel(1, "Dreamscape"))
	require.NoError(t, err)
	assert.True(t, on)

	snap := recv(t, ch)
	require.Len(t, snap, 1)
	assert.Equal(t, int64(1), snap[0].ModelID)

	on, err = l.ToggleFavorite(sampleModel(1, "Dreamscape"))
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, recv(t, ch))
}

func TestObserveFavorites_SeededWithCurrentState(t *testing.T) {
	l := testLibrary(t)

	_, err := l.ToggleFavorite(sampleModel(5, "Existing"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := l.ObserveFavorites(ctx)
	require.NoError(t, err)

	snap := recv(t, ch)
	require.Len(t, snap, 1)
	assert.Equal(t, int64(5), snap[0].ModelID)
}

func TestObserveCollection_NotifiesOnMutation(t *testing.T) {
	l := testLibrary(t)

	col, err := l.CreateCollection("Landscapes")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := l.ObserveCollection(ctx, col.ID)
	require.NoError(t, err)
	assert.Empty(t, recv(t, ch))

	require.NoError(t, l.AddToCollection(col.ID, sampleModel(3, "Vista")))
	snap := recv(t, ch)
	require.Len(t, snap, 1)
	assert.Equal(t, int64(3), snap[0].ModelID)

	require.NoError(t, l.RemoveFromCollection(col.ID, 3))
	assert.Empty(t, recv(t, ch))
}

func TestBulkMove_NotifiesBothCollections(t *testing.T) {
	l := testLibrary(t)

	src, err := l.CreateCollection("Source")
	require.NoError(t, err)
	dst, err := l.CreateCollection("Target")
	require.NoError(t, err)
	require.NoError(t, l.AddToCollection(src.ID, sampleModel(10, "Mover")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srcCh, err := l.ObserveCollection(ctx, src.ID)
	require.NoError(t, err)
	dstCh, err := l.ObserveCollection(ctx, dst.ID)
	require.NoError(t, err)
	require.Len(t, recv(t, srcCh), 1)
	assert.Empty(t, recv(t, dstCh))

	require.NoError(t, l.BulkMoveModels(src.ID, dst.ID, []int64{10}))

	assert.Empty(t, recv(t, srcCh))
	moved := recv(t, dstCh)
	require.Len(t, moved, 1)
	assert.Equal(t, int64(10), moved[0].ModelID)
}

func TestObservePreferences_NotifiesOnChange(t *testing.T) {
	l := testLibrary(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := l.ObservePreferences(ctx)
	require.NoError(t, err)

	seed := recv(t, ch)
	assert.Equal(t, models.NsfwFilterOff, seed.NsfwFilterLevel)

	require.NoError(t, l.SetNsfwFilterLevel(models.NsfwFilterAll))
	assert.Equal(t, models.NsfwFilterAll, recv(t, ch).NsfwFilterLevel)

	require.NoError(t, l.SetGridColumns(5))
	assert.Equal(t, 5, recv(t, ch).GridColumns)
}

func TestObserve_CancelUnsubscribes(t *testing.T) {
	l := testLibrary(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := l.ObserveFavorites(ctx)
	require.NoError(t, err)
	recv(t, ch)

	cancel()
	require.Eventually(t, func() bool {
		l.favorites.mu.Lock()
		defer l.favorites.mu.Unlock()
		return len(l.favorites.subs) == 0
	}, time.Second, time.Millisecond)

	_, err = l.ToggleFavorite(sampleModel(1, "Late"))
	require.NoError(t, err)

	select {
	case snap := <-ch:
		t.Fatalf("unsubscribed channel received %v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSeed_YieldsToSnapshotPublishedDuringSubscribe(t *testing.T) {
	b := newBroadcaster[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.subscribe(ctx)

	// A mutation lands between subscribing and delivering the seed. The
	// older seed must not displace the mutation's snapshot.
	b.publish(2)
	seedOffer(ch, 1)

	assert.Equal(t, 2, recv(t, ch))
}

func TestSlowObserver_GetsNewestSnapshot(t *testing.T) {
	l := testLibrary(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := l.ObserveFavorites(ctx)
	require.NoError(t, err)
	recv(t, ch)

	// Two mutations without a read in between. The pending snapshot is
	// replaced, never queued, so the next read sees the final state.
	_, err = l.ToggleFavorite(sampleModel(1, "A"))
	require.NoError(t, err)
	_, err = l.ToggleFavorite(sampleModel(2, "B"))
	require.NoError(t, err)

	snap := recv(t, ch)
	assert.Len(t, snap, 2)
}
