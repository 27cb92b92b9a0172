package catalog

import (
	"context"
	"fmt"
	"os"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/ports"
)

var _ ports.CatalogSource = (*FileCatalogSource)(nil)

// Loads the stop catalog from a JSON file on disk.
type FileCatalogSource struct {
	Path string
}

func NewFileCatalogSource(path string) *FileCatalogSource {
	return &FileCatalogSource{Path: path}
}

func (f *FileCatalogSource) LoadStops(ctx context.Context) ([]domain.Stop, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("load stops: read %q: %w", f.Path, err)
	}

	stops, err := domain.DecodeStops(b)
	if err != nil {
		return nil, fmt.Errorf("load stops: %q: %w", f.Path, err)
	}
	return stops, nil
}
