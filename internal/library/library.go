// Package library is the domain service over the locally owned data:
// favorites, collections and preferences. Mutations route through the
// local store and every observer immediately receives the new full
// snapshot, so active screens never need an explicit refresh.
package library

import (
	"context"
	"sync"
	"time"

	"github.com/riox432/civitdeck/internal/db"
	"github.com/riox432/civitdeck/internal/models"
)

// Library wraps the local store with change notification.
type Library struct {
	store *db.DB

	favorites   *broadcaster[[]models.FavoriteModelSummary]
	preferences *broadcaster[models.UserPreferences]

	mu          sync.Mutex
	collections map[int64]*broadcaster[[]models.CollectionModelEntry]
}

// New creates a library over the given store.
func New(store *db.DB) *Library {
	return &Library{
		store:       store,
		favorites:   newBroadcaster[[]models.FavoriteModelSummary](),
		preferences: newBroadcaster[models.UserPreferences](),
		collections: make(map[int64]*broadcaster[[]models.CollectionModelEntry]),
	}
}

// Store exposes the underlying local store for read-only queries.
func (l *Library) Store() *db.DB {
	return l.store
}

func (l *Library) collectionBroadcaster(id int64) *broadcaster[[]models.CollectionModelEntry] {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.collections[id]
	if !ok {
		b = newBroadcaster[[]models.CollectionModelEntry]()
		l.collections[id] = b
	}
	return b
}

// --- favorites ---

// ToggleFavorite flips the favorite state of a model, snapshotting it at
// toggle time. Returns true when the model is a favorite afterwards.
func (l *Library) ToggleFavorite(model *models.Model) (bool, error) {
	favorited, err := l.store.ToggleFavorite(model)
	if err != nil {
		return false, err
	}
	l.notifyFavorites()
	return favorited, nil
}

// RemoveFavorite unfavorites by id. Idempotent.
func (l *Library) RemoveFavorite(modelID int64) error {
	if err := l.store.RemoveFavorite(modelID); err != nil {
		return err
	}
	l.notifyFavorites()
	return nil
}

// Favorites returns the current favorites, most recent first.
func (l *Library) Favorites() ([]models.FavoriteModelSummary, error) {
	return l.store.ListFavorites()
}

// ObserveFavorites returns a hot stream of favorite snapshots. The current
// snapshot is delivered immediately; every mutation delivers a fresh one.
// The subscription ends when ctx is done.
func (l *Library) ObserveFavorites(ctx context.Context) (<-chan []models.FavoriteModelSummary, error) {
	// Subscribe before reading so a mutation landing in between publishes
	// into the channel; the seed then yields instead of displacing it.
	ch := l.favorites.subscribe(ctx)
	snap, err := l.store.ListFavorites()
	if err != nil {
		return nil, err
	}
	seedOffer(ch, snap)
	return ch, nil
}

func (l *Library) notifyFavorites() {
	snap, err := l.store.ListFavorites()
	if err != nil {
		return
	}
	l.favorites.publish(snap)
}

// --- collections ---

// CreateCollection creates a named collection.
func (l *Library) CreateCollection(name string) (*models.ModelCollection, error) {
	return l.store.CreateCollection(name)
}

// RenameCollection renames a collection; the default collection is rejected.
func (l *Library) RenameCollection(id int64, name string) error {
	return l.store.RenameCollection(id, name)
}

// DeleteCollection deletes a collection; the default collection is rejected.
func (l *Library) DeleteCollection(id int64) error {
	if err := l.store.DeleteCollection(id); err != nil {
		return err
	}
	l.notifyCollection(id)
	return nil
}

// Collections lists all collections with derived counts and thumbnails.
func (l *Library) Collections() ([]models.ModelCollection, error) {
	return l.store.ListCollections()
}

// AddToCollection snapshots a model into a collection.
func (l *Library) AddToCollection(collectionID int64, model *models.Model) error {
	entry := models.NewCollectionEntry(collectionID, model, time.Now())
	if err := l.store.AddModelToCollection(entry); err != nil {
		return err
	}
	l.notifyCollection(collectionID)
	return nil
}

// RemoveFromCollection removes a model from a collection. Idempotent.
func (l *Library) RemoveFromCollection(collectionID, modelID int64) error {
	if err := l.store.RemoveModelFromCollection(collectionID, modelID); err != nil {
		return err
	}
	l.notifyCollection(collectionID)
	return nil
}

// BulkMoveModels atomically moves model ids between collections.
func (l *Library) BulkMoveModels(from, to int64, modelIDs []int64) error {
	if err := l.store.BulkMoveModels(from, to, modelIDs); err != nil {
		return err
	}
	l.notifyCollection(from)
	l.notifyCollection(to)
	return nil
}

// BulkRemoveModels atomically removes model ids from a collection.
func (l *Library) BulkRemoveModels(collectionID int64, modelIDs []int64) error {
	if err := l.store.BulkRemoveModels(collectionID, modelIDs); err != nil {
		return err
	}
	l.notifyCollection(collectionID)
	return nil
}

// ModelsInCollection lists a collection's entries, most recent first.
func (l *Library) ModelsInCollection(id int64) ([]models.CollectionModelEntry, error) {
	return l.store.ListCollectionModels(id)
}

// ObserveCollection returns a hot stream of entry snapshots for one
// collection, seeded with the current snapshot.
func (l *Library) ObserveCollection(ctx context.Context, id int64) (<-chan []models.CollectionModelEntry, error) {
	ch := l.collectionBroadcaster(id).subscribe(ctx)
	snap, err := l.store.ListCollectionModels(id)
	if err != nil {
		return nil, err
	}
	seedOffer(ch, snap)
	return ch, nil
}

func (l *Library) notifyCollection(id int64) {
	l.mu.Lock()
	b, ok := l.collections[id]
	l.mu.Unlock()
	if !ok {
		return
	}
	snap, err := l.store.ListCollectionModels(id)
	if err != nil {
		return
	}
	b.publish(snap)
}

// --- preferences ---

// Preferences returns the singleton preferences row.
func (l *Library) Preferences() (*models.UserPreferences, error) {
	return l.store.GetPreferences()
}

// SetNsfwFilterLevel updates the NSFW filter level and notifies observers.
func (l *Library) SetNsfwFilterLevel(level models.NsfwFilterLevel) error {
	if err := l.store.SetNsfwFilterLevel(level); err != nil {
		return err
	}
	l.notifyPreferences()
	return nil
}

// SetDefaultSort updates the default sort and notifies observers.
func (l *Library) SetDefaultSort(sort models.SortOrder) error {
	if err := l.store.SetDefaultSort(sort); err != nil {
		return err
	}
	l.notifyPreferences()
	return nil
}

// SetDefaultPeriod updates the default period and notifies observers.
func (l *Library) SetDefaultPeriod(period models.TimePeriod) error {
	if err := l.store.SetDefaultPeriod(period); err != nil {
		return err
	}
	l.notifyPreferences()
	return nil
}

// SetGridColumns updates the grid column count and notifies observers.
func (l *Library) SetGridColumns(cols int) error {
	if err := l.store.SetGridColumns(cols); err != nil {
		return err
	}
	l.notifyPreferences()
	return nil
}

// SetAPIKey updates the stored API key and notifies observers.
func (l *Library) SetAPIKey(key string) error {
	if err := l.store.SetAPIKey(key); err != nil {
		return err
	}
	l.notifyPreferences()
	return nil
}

// ObservePreferences returns a hot stream of preference snapshots, seeded
// with the current row.
func (l *Library) ObservePreferences(ctx context.Context) (<-chan models.UserPreferences, error) {
	ch := l.preferences.subscribe(ctx)
	prefs, err := l.store.GetPreferences()
	if err != nil {
		return nil, err
	}
	seedOffer(ch, *prefs)
	return ch, nil
}

func (l *Library) notifyPreferences() {
	prefs, err := l.store.GetPreferences()
	if err != nil {
		return
	}
	l.preferences.publish(*prefs)
}
