package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/platform/obs"
	"stop-viewer-service/internal/ports"
	"strings"
	"time"
)

var _ ports.CatalogSource = (*HTTPCatalogSource)(nil)

// maxCatalogBytes bounds the payload read from the remote source.
const maxCatalogBytes = 8 << 20

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPCatalogSource fetches the stop catalog with a single GET. There is no
// retry: a failed fetch leaves the service not ready.
type HTTPCatalogSource struct {
	session *http.Client
	url     string
}

func NewHTTPCatalogSource(url string, timeout time.Duration) (*HTTPCatalogSource, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("catalog url is empty")
	}
	return &HTTPCatalogSource{
		session: &http.Client{Timeout: timeout},
		url:     url,
	}, nil
}

func (h *HTTPCatalogSource) newRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (h *HTTPCatalogSource) do(req *http.Request) (*http.Response, error) {
	resp, err := h.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

func (h *HTTPCatalogSource) LoadStops(ctx context.Context) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "catalog.http.LoadStops")(&err)

	req, err := h.newRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch stops: %w", err)
	}

	resp, err := h.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stops %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch stops: read body: %w", err)
	}

	stops, err := domain.DecodeStops(b)
	if err != nil {
		return nil, fmt.Errorf("fetch stops: %w", err)
	}
	return stops, nil
}
