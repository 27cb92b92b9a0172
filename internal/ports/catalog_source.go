package ports

import (
	"context"
	"stop-viewer-service/internal/domain"
)

// Port: a boundary for loading the static stop catalog once at startup.
type CatalogSource interface {
	// Return every stop in catalog order.
	LoadStops(ctx context.Context) ([]domain.Stop, error)
}
