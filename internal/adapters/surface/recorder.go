// Package surface mirrors the visual state the core pushes to its view
// collaborators and emits every change as an Event.
package surface

import (
	"sort"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/ports"
	"sync"
)

var (
	_ ports.MapSurface    = (*Recorder)(nil)
	_ ports.ListSurface   = (*Recorder)(nil)
	_ ports.DetailDisplay = (*Recorder)(nil)
)

// Event types.
const (
	EventMarkerAdd    = "marker.add"
	EventMarkerRemove = "marker.remove"
	EventMarkerIcon   = "marker.icon"
	EventMarkerZ      = "marker.z"
	EventMapView      = "map.view"
	EventListRows     = "list.rows"
	EventListEmpty    = "list.empty"
	EventListRow      = "list.row"
	EventDetailShow   = "detail.show"
	EventDetailHide   = "detail.hide"
)

// Event is one change pushed to a view.
type Event struct {
	Type    string
	Key     domain.StopKey
	Marker  *domain.Marker
	Icon    domain.MarkerIcon
	ZOffset *int
	View    *domain.MapView
	Rows    []domain.ListRow
	Row     *domain.ListRow
	Message string
	Detail  *domain.StopDetail
}

// State is the current visual state.
type State struct {
	Markers      []domain.Marker
	Rows         []domain.ListRow
	EmptyMessage string
	Detail       *domain.StopDetail
	View         *domain.MapView
}

// Recorder implements the map, list and detail surfaces in memory. It keeps
// the current state and calls the sink, if any, for every change.
type Recorder struct {
	mu      sync.Mutex
	markers map[domain.StopKey]domain.Marker
	rows    []domain.ListRow
	rowIdx  map[domain.StopKey]int
	empty   string
	detail  *domain.StopDetail
	view    *domain.MapView
	events  []Event
	keep    bool
	sink    func(Event)
}

// NewRecorder returns a Recorder. When keepEvents is set every event is
// also retained for Events().
func NewRecorder(keepEvents bool) *Recorder {
	return &Recorder{
		markers: make(map[domain.StopKey]domain.Marker),
		rowIdx:  make(map[domain.StopKey]int),
		keep:    keepEvents,
	}
}

// SetSink registers fn to receive every subsequent event.
func (r *Recorder) SetSink(fn func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = fn
}

func (r *Recorder) emitLocked(e Event) {
	if r.keep {
		r.events = append(r.events, e)
	}
	if r.sink != nil {
		r.sink(e)
	}
}

func (r *Recorder) PlaceMarker(m domain.Marker) ports.MarkerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.markers[m.Key] = m
	r.emitLocked(Event{Type: EventMarkerAdd, Key: m.Key, Marker: &m})
	return m.Key
}

func (r *Recorder) RemoveMarker(h ports.MarkerHandle) {
	key, ok := h.(domain.StopKey)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.markers[key]; !ok {
		return
	}
	delete(r.markers, key)
	r.emitLocked(Event{Type: EventMarkerRemove, Key: key})
}

func (r *Recorder) SetMarkerIcon(h ports.MarkerHandle, icon domain.MarkerIcon) {
	key, ok := h.(domain.StopKey)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.markers[key]
	if !ok {
		return
	}
	m.Icon = icon
	r.markers[key] = m
	r.emitLocked(Event{Type: EventMarkerIcon, Key: key, Icon: icon})
}

func (r *Recorder) SetMarkerZOffset(h ports.MarkerHandle, z int) {
	key, ok := h.(domain.StopKey)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.markers[key]
	if !ok {
		return
	}
	m.ZOffset = z
	r.markers[key] = m
	r.emitLocked(Event{Type: EventMarkerZ, Key: key, ZOffset: &z})
}

func (r *Recorder) SetView(v domain.MapView) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.view = &v
	r.emitLocked(Event{Type: EventMapView, View: &v})
}

func (r *Recorder) RenderRows(rows []domain.ListRow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = append([]domain.ListRow(nil), rows...)
	r.rowIdx = make(map[domain.StopKey]int, len(rows))
	for i, row := range r.rows {
		r.rowIdx[row.Key] = i
	}
	r.empty = ""
	r.emitLocked(Event{Type: EventListRows, Rows: append([]domain.ListRow(nil), rows...)})
}

func (r *Recorder) RenderEmpty(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = nil
	r.rowIdx = make(map[domain.StopKey]int)
	r.empty = message
	r.emitLocked(Event{Type: EventListEmpty, Message: message})
}

func (r *Recorder) UpdateRow(row domain.ListRow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.rowIdx[row.Key]
	if !ok {
		return
	}
	r.rows[i] = row
	r.emitLocked(Event{Type: EventListRow, Key: row.Key, Row: &row})
}

func (r *Recorder) ShowDetail(d domain.StopDetail) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.detail = &d
	r.emitLocked(Event{Type: EventDetailShow, Detail: &d})
}

func (r *Recorder) HideDetail() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.detail == nil {
		return
	}
	r.detail = nil
	r.emitLocked(Event{Type: EventDetailHide})
}

// State returns a copy of the current visual state. Markers are ordered by
// key so snapshots are stable.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// Observe calls fn with the current state while no event can be emitted.
// A sink change made inside fn sees every event after that state and none
// before it.
func (r *Recorder) Observe(fn func(State)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.stateLocked())
}

func (r *Recorder) stateLocked() State {
	markers := make([]domain.Marker, 0, len(r.markers))
	for _, m := range r.markers {
		markers = append(markers, m)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].Key < markers[j].Key })

	st := State{
		Markers:      markers,
		Rows:         append([]domain.ListRow(nil), r.rows...),
		EmptyMessage: r.empty,
	}
	if r.detail != nil {
		d := *r.detail
		st.Detail = &d
	}
	if r.view != nil {
		v := *r.view
		st.View = &v
	}
	return st
}

// Events returns the retained events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// ResetEvents drops the retained events.
func (r *Recorder) ResetEvents() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Surfaces exposes the recorder as the three view collaborators.
func (r *Recorder) Surfaces() ports.Surfaces {
	return ports.Surfaces{Map: r, List: r, Detail: r}
}
