package services

import (
	"context"
	"fmt"
	"log/slog"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/ports"
)

// CatalogEntry is a stop together with its catalog position and render key.
type CatalogEntry struct {
	Seq  int
	Key  domain.StopKey
	Stop domain.Stop
}

// StopCatalog is the immutable, ordered collection of loaded stops.
type StopCatalog struct {
	entries []CatalogEntry
	byID    map[string]int
	unkeyed int
}

// NewStopCatalog indexes stops by id. When an id repeats, only its first
// occurrence keeps the id; later ones are demoted to unkeyed stops so every
// id names exactly one stop.
func NewStopCatalog(stops []domain.Stop) *StopCatalog {
	c := &StopCatalog{
		entries: make([]CatalogEntry, 0, len(stops)),
		byID:    make(map[string]int, len(stops)),
	}

	for i, s := range stops {
		if s.HasID() {
			if _, dup := c.byID[s.ID]; dup {
				slog.Warn("duplicate stop id; treating later record as unkeyed", "id", s.ID, "seq", i)
				s.ID = ""
			}
		}

		e := CatalogEntry{Seq: i, Key: domain.KeyFor(s, i), Stop: s}
		if s.HasID() {
			c.byID[s.ID] = len(c.entries)
		} else {
			c.unkeyed++
		}
		c.entries = append(c.entries, e)
	}

	return c
}

// LoadCatalog performs the one-shot load from src.
func LoadCatalog(ctx context.Context, src ports.CatalogSource) (*StopCatalog, error) {
	stops, err := src.LoadStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewStopCatalog(stops), nil
}

// Entries returns the catalog in order. The slice must not be modified.
func (c *StopCatalog) Entries() []CatalogEntry {
	return c.entries
}

// Stops returns a copy of the stops in catalog order.
func (c *StopCatalog) Stops() []domain.Stop {
	out := make([]domain.Stop, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Stop
	}
	return out
}

// Lookup finds a keyed stop by id.
func (c *StopCatalog) Lookup(id string) (CatalogEntry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

func (c *StopCatalog) Len() int { return len(c.entries) }

// UnkeyedCount returns how many stops have no usable id.
func (c *StopCatalog) UnkeyedCount() int { return c.unkeyed }

// UnplacedCount returns how many stops lack coordinates.
func (c *StopCatalog) UnplacedCount() int {
	n := 0
	for _, e := range c.entries {
		if !e.Stop.HasCoords() {
			n++
		}
	}
	return n
}
