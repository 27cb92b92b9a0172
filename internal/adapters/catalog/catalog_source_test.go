package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"stop-viewer-service/internal/domain"
	"testing"
	"time"
)

const stopsJSON = `[
	{"id":"a","name":"Taco A","lat":1,"lng":1,"tags":["vegan"]},
	{"id":"b","name":"Taco B","lat":2,"lng":2,"tags":[]}
]`

func TestFileCatalogSourceLoadStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stops.json")
	if err := os.WriteFile(path, []byte(stopsJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	stops, err := NewFileCatalogSource(path).LoadStops(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 2 || stops[0].ID != "a" || stops[1].Name != "Taco B" {
		t.Fatalf("unexpected stops: %+v", stops)
	}
}

func TestFileCatalogSourceMissingFile(t *testing.T) {
	_, err := NewFileCatalogSource(filepath.Join(t.TempDir(), "nope.json")).LoadStops(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestHTTPCatalogSourceLoadStops(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(stopsJSON))
	}))
	defer srv.Close()

	src, err := NewHTTPCatalogSource(srv.URL+"/stops.json", time.Second)
	if err != nil {
		t.Fatal(err)
	}

	stops, err := src.LoadStops(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(stops))
	}
	if calls != 1 {
		t.Fatalf("expected one request, got %d", calls)
	}
}

func TestHTTPCatalogSourceFailuresAreNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src, _ := NewHTTPCatalogSource(srv.URL, time.Second)
	_, err := src.LoadStops(context.Background())

	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusServiceUnavailable {
		t.Fatalf("err = %v, want status 503", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
}

func TestHTTPCatalogSourceMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stops":"nope"}`))
	}))
	defer srv.Close()

	src, _ := NewHTTPCatalogSource(srv.URL, time.Second)
	_, err := src.LoadStops(context.Background())
	if !errors.Is(err, domain.ErrMalformedCatalog) {
		t.Fatalf("err = %v, want ErrMalformedCatalog", err)
	}
}
