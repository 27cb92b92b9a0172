package domain

import (
	"strconv"
	"strings"
)

// Represents a single point of interest shown on the map and in the list.
// A Stop is immutable after the catalog is loaded. An empty ID means the
// source record had no id: such a stop is still rendered but can never be
// favorited or selected. A stop without both coordinates is never placed
// on the map.
type Stop struct {
	ID          string
	Name        string
	Lat         *float64
	Lng         *float64
	Address     string
	Description string
	Tags        []string
}

// HasID reports whether the stop can take part in id-keyed operations.
func (s Stop) HasID() bool { return strings.TrimSpace(s.ID) != "" }

// HasCoords reports whether the stop can be placed on the map.
func (s Stop) HasCoords() bool { return s.Lat != nil && s.Lng != nil }

// Coordinates returns the stop position, if it has one.
func (s Stop) Coordinates() (Coordinates, bool) {
	if !s.HasCoords() {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *s.Lat, Lng: *s.Lng}, true
}

// SearchText is the lowercased haystack used for free-text matching.
func (s Stop) SearchText() string {
	return strings.ToLower(s.Name + " " + s.Description + " " + s.Address)
}

// StopKey identifies a rendered stop. Keyed stops use their id; stops
// without one fall back to their catalog position.
type StopKey string

// KeyFor returns the render key of the stop found at catalog position seq.
func KeyFor(s Stop, seq int) StopKey {
	if s.HasID() {
		return StopKey(s.ID)
	}
	return StopKey("#" + strconv.Itoa(seq))
}

// Detail shown for the selected stop.
type StopDetail struct {
	ID          string
	Name        string
	Address     string
	Description string
	Tags        []string
	Favorite    bool
}

// DetailOf builds the detail payload for a stop.
func DetailOf(s Stop, favorite bool) StopDetail {
	tags := make([]string, len(s.Tags))
	copy(tags, s.Tags)
	return StopDetail{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Description: s.Description,
		Tags:        tags,
		Favorite:    favorite,
	}
}
