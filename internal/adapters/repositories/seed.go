package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/platform/db"
	"strings"
)

// Replace the stops table with the records of a JSON stop file.
func SeedFromJSON(conn *sql.DB, dialect db.Dialect, jsonPath string) (int, error) {
	if conn == nil {
		return 0, errors.New("seed stops: DB is nil")
	}

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed stops: read %q: %w", jsonPath, err)
	}

	stops, err := domain.DecodeStops(bytes)
	if err != nil {
		return 0, fmt.Errorf("seed stops: %w", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("seed stops: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM stops;`); err != nil {
		return 0, fmt.Errorf("seed stops: clear table: %w", err)
	}

	query := `
	INSERT INTO stops (
		seq,
		stop_id,
		name,
		lat,
		lng,
		address,
		description,
		tags
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	if dialect == db.DialectPostgres {
		query = strings.NewReplacer(
			"?, ?, ?, ?, ?, ?, ?, ?",
			"$1, $2, $3, $4, $5, $6, $7, $8",
		).Replace(query)
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("seed stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range stops {
		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return 0, fmt.Errorf("seed stops: encode tags at index %d: %w", i, err)
		}

		var id any
		if s.HasID() {
			id = s.ID
		}

		if _, err := stmt.Exec(i, id, s.Name, s.Lat, s.Lng, s.Address, s.Description, string(tagsJSON)); err != nil {
			return 0, fmt.Errorf("seed stops: insert seq=%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed stops: commit tx: %w", err)
	}

	return len(stops), nil
}
