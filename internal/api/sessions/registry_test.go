package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"stop-viewer-service/internal/adapters/store"
	"stop-viewer-service/internal/adapters/surface"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/services"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() *services.StopCatalog {
	lat, lng := 1.0, 2.0
	return services.NewStopCatalog([]domain.Stop{
		{ID: "a", Name: "Taco A", Lat: &lat, Lng: &lng, Tags: []string{"vegan"}},
	})
}

func newRegistry(t *testing.T, size int) (*Registry, *store.MemoryKVStore) {
	t.Helper()
	kv := store.NewMemoryKVStore()
	reg, err := NewRegistry(size, kv, services.ViewerOptions{SearchDebounce: time.Hour})
	require.NoError(t, err)
	t.Cleanup(reg.Close)
	return reg, kv
}

func TestRegistryStartsSessionsWhenCatalogArrives(t *testing.T) {
	reg, _ := newRegistry(t, 4)
	ctx := context.Background()

	early := reg.Open(ctx, "")
	assert.False(t, early.Viewer.Ready())
	_, ok := reg.Catalog()
	assert.False(t, ok)

	reg.SetCatalog(ctx, catalog())
	assert.True(t, early.Viewer.Ready())

	late := reg.Open(ctx, "")
	assert.True(t, late.Viewer.Ready())
	assert.NotEqual(t, early.ID, late.ID)
}

func TestRegistryReopensSessionWithPersistedState(t *testing.T) {
	reg, kv := newRegistry(t, 1)
	ctx := context.Background()
	reg.SetCatalog(ctx, catalog())

	first := reg.Open(ctx, "")
	_, ok := first.Viewer.ToggleFavorite(ctx, "a")
	require.True(t, ok)

	raw, err := kv.Get(ctx, "stopviewer:"+first.ID+":favorites")
	require.NoError(t, err)
	assert.JSONEq(t, `["a"]`, string(raw))

	// evicts first
	reg.Open(ctx, "")
	_, live := reg.Get(first.ID)
	require.False(t, live)

	again := reg.Open(ctx, first.ID)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.Viewer.IsFavorite("a"))
}

func TestRegistryEvictionClosesSubscriptions(t *testing.T) {
	reg, _ := newRegistry(t, 1)
	ctx := context.Background()

	s := reg.Open(ctx, "")
	_, events, cancel := s.Subscribe()
	defer cancel()

	reg.Open(ctx, "")

	_, open := <-events
	assert.False(t, open)
	assert.Equal(t, 1, reg.Len())
}

func TestSessionBroadcastsSurfaceEvents(t *testing.T) {
	reg, _ := newRegistry(t, 2)
	ctx := context.Background()
	s := reg.Open(ctx, "")

	state, events, cancel := s.Subscribe()
	assert.Empty(t, state.Markers)
	reg.SetCatalog(ctx, catalog())

	var types []string
	for len(events) > 0 {
		types = append(types, (<-events).Type)
	}
	assert.Contains(t, types, surface.EventMapView)
	assert.Contains(t, types, surface.EventMarkerAdd)
	assert.Contains(t, types, surface.EventListRows)

	cancel()
	cancel()
	assert.Equal(t, 0, s.Subscribers())
}

func TestResolveSetsCookie(t *testing.T) {
	reg, _ := newRegistry(t, 2)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-uuid"})

	s := reg.Resolve(rec, req)
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, s.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	reg, _ := newRegistry(t, 2)
	ctx := context.Background()
	reg.SetCatalog(ctx, catalog())
	s := reg.Open(ctx, "")

	_, events, cancel := s.Subscribe()
	defer cancel()

	for i := 0; i <= subscriberBuffer; i++ {
		s.Viewer.SetDietTag(ctx, "vegan", i%2 == 0)
	}

	received := 0
	for range events {
		received++
	}
	assert.Equal(t, subscriberBuffer, received)
	assert.Equal(t, 0, s.Subscribers())
}

func TestSubscribeStateAndEventsDoNotOverlap(t *testing.T) {
	reg, _ := newRegistry(t, 2)
	ctx := context.Background()
	reg.SetCatalog(ctx, catalog())
	s := reg.Open(ctx, "")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			s.Viewer.SetFavoritesOnly(ctx, i%2 == 0)
		}
	}()

	state, events, cancel := s.Subscribe()
	defer cancel()

	placed := map[domain.StopKey]bool{}
	for _, m := range state.Markers {
		placed[m.Key] = true
	}
	apply := func(e surface.Event) {
		switch e.Type {
		case surface.EventMarkerAdd:
			require.False(t, placed[e.Key], "marker %s added twice", e.Key)
			placed[e.Key] = true
		case surface.EventMarkerRemove:
			require.True(t, placed[e.Key], "marker %s removed but never placed", e.Key)
			delete(placed, e.Key)
		}
	}

	<-done
	for len(events) > 0 {
		apply(<-events)
	}

	final := map[domain.StopKey]bool{}
	for _, m := range s.State().Markers {
		final[m.Key] = true
	}
	assert.Equal(t, final, placed)
}
