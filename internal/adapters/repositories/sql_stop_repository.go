package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/ports"
)

var _ ports.CatalogSource = (*SQLStopRepository)(nil)

// SQL-backed implementation of the CatalogSource port. The query takes no
// parameters so the same code serves SQLite and Postgres.
type SQLStopRepository struct{ DB *sql.DB }

func NewSQLStopRepository(db *sql.DB) *SQLStopRepository {
	return &SQLStopRepository{DB: db}
}

// Return all stops in catalog order.
func (s *SQLStopRepository) LoadStops(ctx context.Context) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sql stop repository: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		name,
		lat,
		lng,
		address,
		description,
		tags
	FROM stops
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var (
			id       sql.NullString
			lat, lng sql.NullFloat64
			tagsJSON string
			st       domain.Stop
		)
		if err := rows.Scan(&id, &st.Name, &lat, &lng, &st.Address, &st.Description, &tagsJSON); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}

		st.ID = id.String
		if lat.Valid && lng.Valid {
			st.Lat, st.Lng = &lat.Float64, &lng.Float64
		}
		if err := json.Unmarshal([]byte(tagsJSON), &st.Tags); err != nil {
			return nil, fmt.Errorf("list stops: decode tags for %q: %w", st.Name, err)
		}

		stops = append(stops, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}
