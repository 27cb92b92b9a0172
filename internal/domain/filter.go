package domain

import (
	"encoding/json"
	"strings"
)

// FilterCriteria is the structured visibility predicate. The zero value is
// not usable; start from DefaultFilterCriteria.
type FilterCriteria struct {
	DietTags      map[DietTag]struct{}
	FavoritesOnly bool
	Search        string
}

// DefaultFilterCriteria matches every stop.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{DietTags: map[DietTag]struct{}{}}
}

// Clone returns a copy that shares no state with c.
func (c FilterCriteria) Clone() FilterCriteria {
	tags := make(map[DietTag]struct{}, len(c.DietTags))
	for t := range c.DietTags {
		tags[t] = struct{}{}
	}
	return FilterCriteria{DietTags: tags, FavoritesOnly: c.FavoritesOnly, Search: c.Search}
}

// WithDietTag returns c with tag switched on or off. Tags outside the
// vocabulary are ignored.
func (c FilterCriteria) WithDietTag(tag string, on bool) FilterCriteria {
	out := c.Clone()
	t, ok := ParseDietTag(tag)
	if !ok {
		return out
	}
	if on {
		out.DietTags[t] = struct{}{}
	} else {
		delete(out.DietTags, t)
	}
	return out
}

// SelectedDietTags returns the active tags in vocabulary order.
func (c FilterCriteria) SelectedDietTags() []DietTag {
	out := make([]DietTag, 0, len(c.DietTags))
	for _, t := range AllowedDietTags {
		if _, ok := c.DietTags[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// SearchTerms splits the search text into lowercased whitespace-separated terms.
func (c FilterCriteria) SearchTerms() []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(c.Search)))
}

// IsDefault reports whether c matches every stop.
func (c FilterCriteria) IsDefault() bool {
	return len(c.DietTags) == 0 && !c.FavoritesOnly && len(c.SearchTerms()) == 0
}

// Matches reports whether s satisfies every enabled component:
// all search terms occur in the stop text, at least one selected diet tag
// is on the stop, and the stop is a favorite when favorites-only is on.
func (c FilterCriteria) Matches(s Stop, favorites FavoriteSet) bool {
	return c.matchesSearch(s) && c.matchesDiet(s) && c.matchesFavorite(s, favorites)
}

func (c FilterCriteria) matchesSearch(s Stop) bool {
	terms := c.SearchTerms()
	if len(terms) == 0 {
		return true
	}
	text := s.SearchText()
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

func (c FilterCriteria) matchesDiet(s Stop) bool {
	if len(c.DietTags) == 0 {
		return true
	}
	for _, tag := range s.Tags {
		if _, ok := c.DietTags[DietTag(strings.ToLower(strings.TrimSpace(tag)))]; ok {
			return true
		}
	}
	return false
}

func (c FilterCriteria) matchesFavorite(s Stop, favorites FavoriteSet) bool {
	if !c.FavoritesOnly {
		return true
	}
	return favorites.Has(s.ID)
}

// FilterRecord is the persisted form of FilterCriteria.
type FilterRecord struct {
	DietTags      []string `json:"dietTags"`
	FavoritesOnly bool     `json:"favoritesOnly"`
	Search        string   `json:"search"`
}

// Record converts c to its persisted form.
func (c FilterCriteria) Record() FilterRecord {
	tags := make([]string, 0, len(c.DietTags))
	for _, t := range c.SelectedDietTags() {
		tags = append(tags, string(t))
	}
	return FilterRecord{DietTags: tags, FavoritesOnly: c.FavoritesOnly, Search: c.Search}
}

// DecodeFilterCriteria parses a persisted filters record. Each field falls
// back to its default on its own, so one damaged field does not discard the
// others. Unknown diet tags are dropped.
func DecodeFilterCriteria(data []byte) FilterCriteria {
	c := DefaultFilterCriteria()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return c
	}

	if raw, ok := fields["dietTags"]; ok {
		for _, tag := range rawStrings(raw) {
			if t, ok := ParseDietTag(tag); ok {
				c.DietTags[t] = struct{}{}
			}
		}
	}

	if raw, ok := fields["favoritesOnly"]; ok {
		var on bool
		if err := json.Unmarshal(raw, &on); err == nil {
			c.FavoritesOnly = on
		}
	}

	if raw, ok := fields["search"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			c.Search = s
		}
	}

	return c
}
