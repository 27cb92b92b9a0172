package domain

import (
	"errors"
	"testing"
)

func TestDecodeStops(t *testing.T) {
	payload := `[
		{"id":"a","name":"Taco A","lat":1,"lng":1.5,"address":"1 Elm St","description":"tacos","tags":["vegan"]},
		{"id":12,"name":"Numbered","lat":"2","lng":2},
		{"name":"No id","lat":3,"lng":3,"tags":["gf",4]},
		"not an object",
		{"id":"","name":"Blank id"}
	]`

	stops, err := DecodeStops([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 4 {
		t.Fatalf("expected 4 stops, got %d", len(stops))
	}

	a := stops[0]
	if a.ID != "a" || !a.HasCoords() || *a.Lng != 1.5 || a.Address != "1 Elm St" {
		t.Fatalf("stop a decoded wrong: %+v", a)
	}

	if stops[1].ID != "12" {
		t.Fatalf("numeric id = %q, want 12", stops[1].ID)
	}
	if stops[1].HasCoords() {
		t.Fatal("string latitude should leave the stop without coordinates")
	}

	if stops[2].HasID() {
		t.Fatal("stop without id reports HasID")
	}
	if len(stops[2].Tags) != 1 || stops[2].Tags[0] != "gf" {
		t.Fatalf("tags = %v, want [gf]", stops[2].Tags)
	}

	if stops[3].HasID() {
		t.Fatal("blank id reports HasID")
	}
}

func TestDecodeStopsRejectsNonArray(t *testing.T) {
	for _, in := range []string{`{"stops":[]}`, `oops`, ``} {
		if _, err := DecodeStops([]byte(in)); !errors.Is(err, ErrMalformedCatalog) {
			t.Errorf("DecodeStops(%q) err = %v, want ErrMalformedCatalog", in, err)
		}
	}
}

func TestKeyFor(t *testing.T) {
	if got := KeyFor(Stop{ID: "a"}, 3); got != "a" {
		t.Fatalf("KeyFor keyed = %q", got)
	}
	if got := KeyFor(Stop{}, 3); got != "#3" {
		t.Fatalf("KeyFor unkeyed = %q", got)
	}
}
