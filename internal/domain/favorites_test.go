package domain

import (
	"reflect"
	"testing"
)

func TestFavoriteSetToggleTwiceRestores(t *testing.T) {
	for _, id := range []string{"a", "b", "stop-42"} {
		s := NewFavoriteSet("b")
		before := s.Has(id)

		s.Toggle(id)
		if s.Has(id) == before {
			t.Fatalf("toggle(%q) did not flip membership", id)
		}
		s.Toggle(id)
		if s.Has(id) != before {
			t.Fatalf("toggle(%q) twice = %v, want %v", id, s.Has(id), before)
		}
	}
}

func TestFavoriteSetIgnoresBlankIDs(t *testing.T) {
	s := NewFavoriteSet("", "  ", "a")
	if len(s) != 1 {
		t.Fatalf("len = %d, want 1", len(s))
	}
	if s.Toggle("") || s.Toggle("   ") {
		t.Fatal("blank toggle reported a favorite")
	}
	if len(s) != 1 {
		t.Fatalf("blank toggle changed the set: %v", s.IDs())
	}
}

func TestDecodeFavorites(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`["b","a","a"]`, []string{"a", "b"}},
		{`["a", 7, "", null]`, []string{"a"}},
		{`{"a":true}`, []string{}},
		{`not json`, []string{}},
		{``, []string{}},
	}

	for _, tc := range tests {
		got := DecodeFavorites([]byte(tc.in)).IDs()
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("DecodeFavorites(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
