package domain

import (
	"reflect"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func tacoStops() []Stop {
	return []Stop{
		{ID: "a", Name: "Taco A", Lat: ptr(1), Lng: ptr(1), Tags: []string{"vegan"}},
		{ID: "b", Name: "Taco B", Lat: ptr(2), Lng: ptr(2), Tags: []string{}},
	}
}

func matching(c FilterCriteria, stops []Stop, favs FavoriteSet) []string {
	var ids []string
	for _, s := range stops {
		if c.Matches(s, favs) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func TestFilterCriteriaMatches(t *testing.T) {
	stops := tacoStops()

	tests := []struct {
		name string
		c    FilterCriteria
		favs FavoriteSet
		want []string
	}{
		{"default matches all", DefaultFilterCriteria(), NewFavoriteSet(), []string{"a", "b"}},
		{"vegan only", DefaultFilterCriteria().WithDietTag("vegan", true), NewFavoriteSet(), []string{"a"}},
		{"search both terms", FilterCriteria{DietTags: map[DietTag]struct{}{}, Search: "taco b"}, NewFavoriteSet(), []string{"b"}},
		{"search case and spacing", FilterCriteria{DietTags: map[DietTag]struct{}{}, Search: "  TACO   "}, NewFavoriteSet(), []string{"a", "b"}},
		{"search miss", FilterCriteria{DietTags: map[DietTag]struct{}{}, Search: "zzz"}, NewFavoriteSet(), nil},
		{"favorites only, none", FilterCriteria{DietTags: map[DietTag]struct{}{}, FavoritesOnly: true}, NewFavoriteSet(), nil},
		{"favorites only, b", FilterCriteria{DietTags: map[DietTag]struct{}{}, FavoritesOnly: true}, NewFavoriteSet("b"), []string{"b"}},
		{"components are ANDed", FilterCriteria{DietTags: map[DietTag]struct{}{DietVegan: {}}, FavoritesOnly: true}, NewFavoriteSet("b"), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := matching(tc.c, stops, tc.favs)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterCriteriaDietTagsAreORed(t *testing.T) {
	stops := []Stop{
		{ID: "gf", Tags: []string{"GF"}},
		{ID: "veg", Tags: []string{"vegetarian"}},
		{ID: "none", Tags: []string{"spicy"}},
	}

	c := DefaultFilterCriteria().WithDietTag("gf", true).WithDietTag("vegetarian", true)
	got := matching(c, stops, NewFavoriteSet())
	if !reflect.DeepEqual(got, []string{"gf", "veg"}) {
		t.Fatalf("matches = %v", got)
	}
}

func TestWithDietTagIgnoresUnknownTags(t *testing.T) {
	c := DefaultFilterCriteria().WithDietTag("keto", true)
	if len(c.DietTags) != 0 {
		t.Fatalf("unknown tag was accepted: %v", c.DietTags)
	}

	base := DefaultFilterCriteria()
	on := base.WithDietTag("vegan", true)
	if len(base.DietTags) != 0 {
		t.Fatal("WithDietTag mutated the receiver")
	}
	off := on.WithDietTag("vegan", false)
	if len(off.DietTags) != 0 {
		t.Fatalf("tag not removed: %v", off.DietTags)
	}
}

func TestDecodeFilterCriteriaFallsBackPerField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FilterRecord
	}{
		{"valid", `{"dietTags":["vegan","gf"],"favoritesOnly":true,"search":"taco"}`,
			FilterRecord{DietTags: []string{"gf", "vegan"}, FavoritesOnly: true, Search: "taco"}},
		{"unknown tags dropped", `{"dietTags":["keto","vegan",3],"favoritesOnly":false,"search":""}`,
			FilterRecord{DietTags: []string{"vegan"}, Search: ""}},
		{"wrong typed field", `{"dietTags":"vegan","favoritesOnly":"yes","search":"b"}`,
			FilterRecord{DietTags: []string{}, Search: "b"}},
		{"not an object", `[1,2,3]`, FilterRecord{DietTags: []string{}}},
		{"corrupt", `{"dietTags":`, FilterRecord{DietTags: []string{}}},
		{"null", `null`, FilterRecord{DietTags: []string{}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeFilterCriteria([]byte(tc.in)).Record()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("decoded = %+v, want %+v", got, tc.want)
			}
		})
	}
}
