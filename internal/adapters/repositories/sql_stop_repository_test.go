package repositories

import (
	"context"
	"os"
	"path/filepath"
	"stop-viewer-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAndLoadStops(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InitSchema(conn, db.DialectSQLite))
	// schema init is idempotent
	require.NoError(t, InitSchema(conn, db.DialectSQLite))

	seed := filepath.Join(t.TempDir(), "stops.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[
		{"id":"b","name":"Taco B","lat":2,"lng":2,"tags":[]},
		{"name":"Cart","address":"Elm St","tags":["gf"]},
		{"id":"a","name":"Taco A","lat":1,"lng":1.25,"tags":["vegan","gf"]}
	]`), 0o600))

	n, err := SeedFromJSON(conn, db.DialectSQLite, seed)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	stops, err := NewSQLStopRepository(conn).LoadStops(context.Background())
	require.NoError(t, err)
	require.Len(t, stops, 3)

	assert.Equal(t, "b", stops[0].ID)
	assert.Equal(t, []string{}, stops[0].Tags)

	assert.False(t, stops[1].HasID())
	assert.False(t, stops[1].HasCoords())
	assert.Equal(t, "Elm St", stops[1].Address)

	assert.Equal(t, "a", stops[2].ID)
	require.True(t, stops[2].HasCoords())
	assert.Equal(t, 1.25, *stops[2].Lng)
	assert.Equal(t, []string{"vegan", "gf"}, stops[2].Tags)

	// reseeding replaces rather than appends
	n, err = SeedFromJSON(conn, db.DialectSQLite, seed)
	require.NoError(t, err)
	stops, err = NewSQLStopRepository(conn).LoadStops(context.Background())
	require.NoError(t, err)
	assert.Len(t, stops, n)
}
