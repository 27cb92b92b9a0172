package services

import (
	"stop-viewer-service/internal/domain"
	"strings"
)

// SelectionController is the single authority for the selected stop. It
// keeps the marker icon and stacking order, the list highlight and the
// detail display in step with its state: at most one stop carries the
// selected flag, and it is always the controller's current selection.
type SelectionController struct {
	catalog   *StopCatalog
	favorites *FavoritesRegistry
	markers   *MarkerRenderer
	list      *ListRenderer
	detail    *DetailPresenter
	state     domain.Selection
}

func NewSelectionController(
	catalog *StopCatalog,
	favorites *FavoritesRegistry,
	markers *MarkerRenderer,
	list *ListRenderer,
	detail *DetailPresenter,
) *SelectionController {
	return &SelectionController{
		catalog:   catalog,
		favorites: favorites,
		markers:   markers,
		list:      list,
		detail:    detail,
	}
}

// Current returns the controller state.
func (c *SelectionController) Current() domain.Selection { return c.state }

// Select moves to Selected(id). A blank id is ignored. An id that is not in
// the catalog, or not currently visible, clears the selection instead.
// Selecting the current stop again only refreshes the detail display.
func (c *SelectionController) Select(id string, visible func(id string) bool) {
	if strings.TrimSpace(id) == "" {
		return
	}

	entry, ok := c.catalog.Lookup(id)
	if !ok || !visible(id) {
		c.Clear()
		return
	}

	fav := c.favorites.IsFavorite(id)
	if c.state.Is(id) {
		c.detail.Show(domain.DetailOf(entry.Stop, fav))
		return
	}

	c.unmark()
	c.state = domain.Selected(id)

	c.markers.SetIcon(entry.Key, domain.IconSelected)
	c.markers.SetZOffset(entry.Key, domain.SelectedZOffset)
	c.list.SetSelected(entry.Key, true)
	c.detail.Show(domain.DetailOf(entry.Stop, fav))
}

// Clear moves to Unselected and hides the detail display.
func (c *SelectionController) Clear() {
	c.unmark()
	c.state = domain.Selection{}
	c.detail.Hide()
}

// Reconcile clears the selection when the selected stop is no longer
// visible.
func (c *SelectionController) Reconcile(visible func(id string) bool) bool {
	if !c.state.IsSelected() || visible(c.state.ID()) {
		return false
	}
	c.Clear()
	return true
}

// unmark reverts the visual flags of the current selection.
func (c *SelectionController) unmark() {
	if !c.state.IsSelected() {
		return
	}
	entry, ok := c.catalog.Lookup(c.state.ID())
	if !ok {
		return
	}
	c.markers.SetIcon(entry.Key, domain.IconFor(false, c.favorites.IsFavorite(entry.Stop.ID)))
	c.markers.SetZOffset(entry.Key, domain.DefaultZOffset)
	c.list.SetSelected(entry.Key, false)
}
