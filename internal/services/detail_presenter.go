package services

import (
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/ports"
)

// DetailPresenter drives the detail display. While suppressed the display
// stays hidden whatever the selection; lifting suppression shows the last
// detail again if one is still current.
type DetailPresenter struct {
	display    ports.DetailDisplay
	current    *domain.StopDetail
	suppressed bool
}

func NewDetailPresenter(display ports.DetailDisplay) *DetailPresenter {
	return &DetailPresenter{display: display}
}

func (p *DetailPresenter) Show(d domain.StopDetail) {
	p.current = &d
	if !p.suppressed {
		p.display.ShowDetail(d)
	}
}

func (p *DetailPresenter) Hide() {
	p.current = nil
	p.display.HideDetail()
}

// SetFavorite refreshes the favorite state if the detail shows id.
func (p *DetailPresenter) SetFavorite(id string, on bool) {
	if p.current == nil || p.current.ID != id || p.current.Favorite == on {
		return
	}
	d := *p.current
	d.Favorite = on
	p.Show(d)
}

// Suppress forces the display hidden, or restores it.
func (p *DetailPresenter) Suppress(on bool) {
	p.suppressed = on
	switch {
	case on:
		p.display.HideDetail()
	case p.current != nil:
		p.display.ShowDetail(*p.current)
	}
}

func (p *DetailPresenter) Suppressed() bool { return p.suppressed }
