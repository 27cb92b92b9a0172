package services

import (
	"context"
	"log/slog"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/ports"
	"sync"
	"time"
)

type ViewerOptions struct {
	Surfaces       ports.Surfaces
	Store          ports.KVStore
	SearchDebounce time.Duration
	Unkeyed        UnkeyedPolicy
	MapView        domain.MapView
	Logger         *slog.Logger
}

// ViewState is the core state of a Viewer at one point in time.
type ViewState struct {
	Ready            bool
	Criteria         domain.FilterCriteria
	Favorites        []string
	Selection        domain.Selection
	Visible          []domain.Stop
	DetailSuppressed bool
	SearchInput      string
	SearchPending    bool
}

// Viewer is the application state for one user: catalog, favorites,
// filters and selection, plus the renderers that project them onto the
// map, list and detail surfaces. Events are serialized so each one runs to
// completion before the next. Until Start is given a catalog the Viewer is
// not ready and every operation is a no-op.
type Viewer struct {
	mu     sync.Mutex
	opts   ViewerOptions
	logger *slog.Logger

	ready     bool
	closed    bool
	catalog   *StopCatalog
	store     *PersistentStore
	favorites *FavoritesRegistry
	filters   *FilterCriteria
	engine    *VisibilityEngine
	markers   *MarkerRenderer
	list      *ListRenderer
	detail    *DetailPresenter
	selection *SelectionController

	visible    []CatalogEntry
	visibleIDs map[string]struct{}
}

func NewViewer(opts ViewerOptions) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := NewPersistentStore(opts.Store, logger)
	return &Viewer{
		opts:      opts,
		logger:    logger,
		store:     store,
		favorites: NewFavoritesRegistry(store),
		filters:   NewFilterCriteria(store, opts.SearchDebounce),
		markers:   NewMarkerRenderer(opts.Surfaces.Map),
		list:      NewListRenderer(opts.Surfaces.List),
		detail:    NewDetailPresenter(opts.Surfaces.Detail),
	}
}

// Start makes the Viewer ready: it loads the persisted favorites and
// filters, centers the map and renders the first visible set. Calling it
// again is a no-op.
func (v *Viewer) Start(ctx context.Context, catalog *StopCatalog) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.ready || v.closed || catalog == nil {
		return
	}

	v.catalog = catalog
	v.engine = NewVisibilityEngine(catalog, v.opts.Unkeyed)
	v.selection = NewSelectionController(catalog, v.favorites, v.markers, v.list, v.detail)

	v.favorites.Load(ctx)
	v.filters.Load(ctx)

	v.ready = true
	v.opts.Surfaces.Map.SetView(v.opts.MapView)
	v.recomputeLocked()
}

func (v *Viewer) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

// ToggleFavorite flips the favorite state of a keyed catalog stop. It never
// changes the selection.
func (v *Viewer) ToggleFavorite(ctx context.Context, id string) (favorite bool, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.ready {
		return false, false
	}
	entry, found := v.catalog.Lookup(id)
	if !found {
		return false, false
	}

	favorite, _ = v.favorites.Toggle(ctx, id)

	if !v.selection.Current().Is(id) {
		v.markers.SetIcon(entry.Key, domain.IconFor(false, favorite))
	}
	v.list.SetFavorite(entry.Key, favorite)
	v.detail.SetFavorite(id, favorite)

	if v.filters.Criteria().FavoritesOnly {
		v.recomputeLocked()
	}
	return favorite, true
}

// IsFavorite reports whether id is favorited.
func (v *Viewer) IsFavorite(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.favorites.IsFavorite(id)
}

// SetDietTag switches a diet filter and commits.
func (v *Viewer) SetDietTag(ctx context.Context, tag string, on bool) {
	v.UpdateFilters(ctx, func(f *FilterCriteria) { f.SetDietTag(tag, on) })
}

// SetFavoritesOnly switches the favorites-only filter and commits.
func (v *Viewer) SetFavoritesOnly(ctx context.Context, on bool) {
	v.UpdateFilters(ctx, func(f *FilterCriteria) { f.SetFavoritesOnly(on) })
}

// UpdateFilters applies any number of setters and then commits once:
// persist, then recompute visibility.
func (v *Viewer) UpdateFilters(ctx context.Context, apply func(f *FilterCriteria)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.ready {
		return
	}
	apply(v.filters)
	v.commitLocked(ctx)
}

// SetSearch buffers new search text. The commit runs once the input has
// been quiet for the debounce interval.
func (v *Viewer) SetSearch(ctx context.Context, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.ready {
		return
	}
	v.filters.SetSearch(text)

	commitCtx := context.WithoutCancel(ctx)
	v.filters.ScheduleCommit(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.closed {
			return
		}
		v.commitLocked(commitCtx)
	})
}

// FlushSearch commits buffered search text now. It reports whether there
// was anything pending.
func (v *Viewer) FlushSearch() bool {
	return v.filters.FlushPendingCommit()
}

// ResetFilters restores default filters, dropping buffered search text.
func (v *Viewer) ResetFilters(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.ready {
		return
	}
	v.filters.Reset()
	v.commitLocked(ctx)
}

// Select makes id the selected stop. See SelectionController.Select.
func (v *Viewer) Select(id string) domain.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.ready {
		return domain.Selection{}
	}
	v.selection.Select(id, v.isVisible)
	return v.selection.Current()
}

// ClearSelection moves to Unselected.
func (v *Viewer) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.ready {
		return
	}
	v.selection.Clear()
}

// SuppressDetail is the hook for panel and overlay chrome.
func (v *Viewer) SuppressDetail(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.detail.Suppress(on)
}

// VisibleStops returns the stops that currently satisfy the filters, in
// catalog order.
func (v *Viewer) VisibleStops() []domain.Stop {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibleStopsLocked()
}

func (v *Viewer) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := ViewState{
		Ready:            v.ready,
		Criteria:         v.filters.Criteria(),
		Favorites:        v.favorites.IDs(),
		DetailSuppressed: v.detail.Suppressed(),
		SearchInput:      v.filters.SearchInput(),
		SearchPending:    v.filters.HasPendingCommit(),
		Visible:          v.visibleStopsLocked(),
	}
	if v.selection != nil {
		st.Selection = v.selection.Current()
	}
	return st
}

// Close commits buffered search text, then stops the search debouncer.
// The Viewer ignores later deferred commits.
func (v *Viewer) Close() {
	// The flushed commit takes v.mu.
	v.filters.FlushPendingCommit()

	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()

	v.filters.Close()
}

// commitLocked persists the criteria, including any buffered search text,
// so a pending deferred commit has nothing left to do.
func (v *Viewer) commitLocked(ctx context.Context) {
	v.filters.CancelPendingCommit()
	v.filters.Commit(ctx)
	v.recomputeLocked()
}

// recomputeLocked rebuilds the visible set from scratch and pushes it to
// both renderers. A selection that fell out of the set is cleared first so
// neither view ever shows a hidden stop as selected.
func (v *Viewer) recomputeLocked() {
	criteria := v.filters.Criteria()
	favorites := v.favorites.Set()

	v.visible = v.engine.VisibleStops(criteria, favorites)
	v.visibleIDs = make(map[string]struct{}, len(v.visible))
	for _, e := range v.visible {
		if e.Stop.HasID() {
			v.visibleIDs[e.Stop.ID] = struct{}{}
		}
	}

	if v.selection.Reconcile(v.isVisible) {
		v.logger.Debug("selection cleared: stop no longer visible")
	}

	sel := v.selection.Current()
	added, removed := v.markers.Sync(v.visible, favorites, sel)
	v.list.Render(v.visible, favorites, sel)

	v.logger.Debug("visibility recomputed",
		"visible", len(v.visible),
		"markers", v.markers.Count(),
		"markers_added", added,
		"markers_removed", removed,
	)
}

func (v *Viewer) isVisible(id string) bool {
	_, ok := v.visibleIDs[id]
	return ok
}

func (v *Viewer) visibleStopsLocked() []domain.Stop {
	out := make([]domain.Stop, 0, len(v.visible))
	for _, e := range v.visible {
		out = append(out, e.Stop)
	}
	return out
}
