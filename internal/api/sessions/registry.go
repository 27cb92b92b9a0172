// Package sessions keeps one Viewer per browser session.
package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"stop-viewer-service/internal/adapters/store"
	"stop-viewer-service/internal/ports"
	"stop-viewer-service/internal/services"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// CookieName carries the session id.
	CookieName = "sv_session"

	keyNamespace = "stopviewer"
	cookieMaxAge = 365 * 24 * 60 * 60
)

// Registry holds the live sessions in an LRU. An evicted session is closed;
// its persisted favorites and filters stay in the store under the session
// id, so a returning browser picks them up again.
type Registry struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]
	store    ports.KVStore
	template services.ViewerOptions
	catalog  *services.StopCatalog
	logger   *slog.Logger
}

// NewRegistry returns a registry holding at most size sessions. Each
// session persists into its own namespace of kv. template supplies every
// ViewerOptions field except Surfaces and Store.
func NewRegistry(size int, kv ports.KVStore, template services.ViewerOptions) (*Registry, error) {
	logger := template.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.NewWithEvict(size, func(id string, s *Session) {
		logger.Debug("session evicted", "session", id)
		s.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("new session registry: %w", err)
	}

	return &Registry{
		sessions: cache,
		store:    kv,
		template: template,
		logger:   logger,
	}, nil
}

// SetCatalog makes the catalog available and starts every live session.
// Sessions created afterwards start immediately.
func (r *Registry) SetCatalog(ctx context.Context, catalog *services.StopCatalog) {
	r.mu.Lock()
	r.catalog = catalog
	live := r.sessions.Values()
	r.mu.Unlock()

	for _, s := range live {
		s.start(ctx, catalog)
	}
}

// Catalog returns the loaded catalog, if any.
func (r *Registry) Catalog() (*services.StopCatalog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catalog, r.catalog != nil
}

// Get returns a live session.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.Get(id)
}

// Open returns the live session for id, creating it when it is not live.
// An empty or malformed id gets a fresh one.
func (r *Registry) Open(ctx context.Context, id string) *Session {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.mu.Lock()
	if s, ok := r.sessions.Get(id); ok {
		r.mu.Unlock()
		return s
	}

	opts := r.template
	opts.Store = store.NewNamespaced(r.store, keyNamespace+":"+id)
	s := newSession(id, opts)
	r.sessions.Add(id, s)
	catalog := r.catalog
	r.mu.Unlock()

	r.logger.Debug("session opened", "session", id)
	s.start(ctx, catalog)
	return s
}

// Resolve finds or creates the session named by the request cookie and
// refreshes the cookie.
func (r *Registry) Resolve(w http.ResponseWriter, req *http.Request) *Session {
	var id string
	if c, err := req.Cookie(CookieName); err == nil {
		id = c.Value
	}

	s := r.Open(req.Context(), id)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.Len()
}

// Close closes every live session.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.Purge()
}

type ctxKey struct{}

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}
