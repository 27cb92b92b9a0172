package sessions

import (
	"context"
	"stop-viewer-service/internal/adapters/surface"
	"stop-viewer-service/internal/services"
	"sync"
)

// subscriberBuffer is the number of events a slow subscriber may lag
// behind before it is dropped.
const subscriberBuffer = 64

// Session is one browser's viewer plus the surfaces it renders into.
type Session struct {
	ID     string
	Viewer *services.Viewer

	recorder *surface.Recorder

	mu     sync.Mutex
	subs   map[chan surface.Event]struct{}
	closed bool
}

func newSession(id string, opts services.ViewerOptions) *Session {
	rec := surface.NewRecorder(false)
	s := &Session{
		ID:       id,
		recorder: rec,
		subs:     make(map[chan surface.Event]struct{}),
	}
	rec.SetSink(s.broadcast)

	opts.Surfaces = rec.Surfaces()
	s.Viewer = services.NewViewer(opts)
	return s
}

// State returns what the session's map, list and detail display show now.
func (s *Session) State() surface.State {
	return s.recorder.State()
}

// Subscribe returns the current surface state together with a channel of
// every later event, with no gap or overlap between the two. The returned
// function cancels the subscription. The channel is closed on cancel, when
// the session closes, or when the subscriber falls a full buffer behind;
// in the last case it should subscribe again for a fresh state.
func (s *Session) Subscribe() (surface.State, <-chan surface.Event, func()) {
	ch := make(chan surface.Event, subscriberBuffer)

	var state surface.State
	s.recorder.Observe(func(st surface.State) {
		state = st

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			close(ch)
			return
		}
		s.subs[ch] = struct{}{}
	})

	var once sync.Once
	return state, ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Session) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Session) broadcast(e surface.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subs {
		select {
		case ch <- e:
		default:
			delete(s.subs, ch)
			close(ch)
		}
	}
}

func (s *Session) start(ctx context.Context, catalog *services.StopCatalog) {
	if catalog != nil {
		s.Viewer.Start(ctx, catalog)
	}
}

// Close stops the viewer and ends every subscription.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for ch := range s.subs {
		close(ch)
	}
	s.subs = nil
	s.mu.Unlock()

	s.Viewer.Close()
}
