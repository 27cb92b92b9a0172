package domain

import "strings"

// DietTag is a filter facet from a fixed vocabulary.
type DietTag string

const (
	DietGlutenFree DietTag = "gf"
	DietVegetarian DietTag = "vegetarian"
	DietVegan      DietTag = "vegan"
)

// AllowedDietTags lists the vocabulary in display order.
var AllowedDietTags = []DietTag{DietGlutenFree, DietVegetarian, DietVegan}

// ParseDietTag normalizes s and reports whether it is in the vocabulary.
func ParseDietTag(s string) (DietTag, bool) {
	t := DietTag(strings.ToLower(strings.TrimSpace(s)))
	for _, allowed := range AllowedDietTags {
		if t == allowed {
			return t, true
		}
	}
	return "", false
}
