package services

import (
	"context"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/platform/debounce"
	"time"
)

// FilterCriteria owns the active filter predicate. Setters only change the
// in-memory criteria; Commit persists them. Callers may apply several
// setters before a single Commit. Search text is held aside until Commit,
// so Criteria never reports text that has not been committed.
type FilterCriteria struct {
	store         *PersistentStore
	criteria      domain.FilterCriteria
	pendingSearch *string
	search        *debounce.Debouncer
}

func NewFilterCriteria(store *PersistentStore, searchDebounce time.Duration) *FilterCriteria {
	return &FilterCriteria{
		store:    store,
		criteria: domain.DefaultFilterCriteria(),
		search:   debounce.New(searchDebounce),
	}
}

// Load replaces the criteria with the persisted record, field by field.
func (f *FilterCriteria) Load(ctx context.Context) {
	f.pendingSearch = nil
	raw, ok := f.store.Get(ctx, FiltersKey)
	if !ok {
		f.criteria = domain.DefaultFilterCriteria()
		return
	}
	f.criteria = domain.DecodeFilterCriteria(raw)
}

// Criteria returns a copy of the committed criteria.
func (f *FilterCriteria) Criteria() domain.FilterCriteria {
	return f.criteria.Clone()
}

// SetDietTag switches tag on or off. Unknown tags are ignored.
func (f *FilterCriteria) SetDietTag(tag string, on bool) {
	f.criteria = f.criteria.WithDietTag(tag, on)
}

func (f *FilterCriteria) SetFavoritesOnly(on bool) {
	f.criteria.FavoritesOnly = on
}

// SetSearch buffers text for the next Commit.
func (f *FilterCriteria) SetSearch(text string) {
	f.pendingSearch = &text
}

// SearchInput returns the buffered search text, or the committed one when
// nothing is buffered.
func (f *FilterCriteria) SearchInput() string {
	if f.pendingSearch != nil {
		return *f.pendingSearch
	}
	return f.criteria.Search
}

// Reset restores the defaults and drops any pending search commit.
func (f *FilterCriteria) Reset() {
	f.search.Cancel()
	f.pendingSearch = nil
	f.criteria = domain.DefaultFilterCriteria()
}

// Commit applies buffered search text and persists the criteria.
func (f *FilterCriteria) Commit(ctx context.Context) bool {
	if f.pendingSearch != nil {
		f.criteria.Search = *f.pendingSearch
		f.pendingSearch = nil
	}
	return f.store.Set(ctx, FiltersKey, f.criteria.Record())
}

// ScheduleCommit defers fn until search input has been quiet for the
// debounce interval. A newer call replaces the pending one.
func (f *FilterCriteria) ScheduleCommit(fn func()) {
	f.search.Trigger(fn)
}

// CancelPendingCommit drops a scheduled commit.
func (f *FilterCriteria) CancelPendingCommit() {
	f.search.Cancel()
}

// FlushPendingCommit runs a scheduled commit now. The caller must not hold
// any lock the scheduled function takes.
func (f *FilterCriteria) FlushPendingCommit() bool {
	return f.search.Flush()
}

// HasPendingCommit reports whether a search commit is waiting.
func (f *FilterCriteria) HasPendingCommit() bool {
	return f.search.Pending()
}

// Close stops the debouncer for good.
func (f *FilterCriteria) Close() {
	f.search.Stop()
}
