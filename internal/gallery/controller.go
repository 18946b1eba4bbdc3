// Package gallery drives the model comparison gallery: an input image, an
// ordered set of selected models with per-model HPO flags, and a result grid
// reconciled by key so unchanged tiles are never rebuilt.
package gallery

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Controller owns the selection and the grid it renders into.
type Controller struct {
	mu      sync.Mutex
	catalog *Catalog
	state   SelectionState
	grid    *Grid
}

// NewController renders the catalog's default selection onto surface.
func NewController(c *Catalog, surface Surface, preloader Preloader) *Controller {
	ctrl := &Controller{
		catalog: c,
		state:   NewSelectionState(c),
		grid:    NewGrid(surface, preloader),
	}
	ctrl.grid.Render(DesiredItems(c, ctrl.state))
	return ctrl
}

// Dispatch applies a and re-renders. A rejected action changes nothing.
func (c *Controller) Dispatch(a Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Reduce(c.catalog, c.state, a)
	if err != nil {
		log.Warn().Err(err).Type("action", a).Msg("gallery action rejected")
		return err
	}
	c.state = next
	c.grid.Render(DesiredItems(c.catalog, c.state))
	return nil
}

// Refresh re-renders the current selection.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid.Render(DesiredItems(c.catalog, c.state))
}

// State returns a copy of the current selection.
func (c *Controller) State() SelectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Catalog is the static configuration the controller was built from.
func (c *Controller) Catalog() *Catalog { return c.catalog }

// Grid is the reconciled result grid.
func (c *Controller) Grid() *Grid { return c.grid }

// Hover starts the full resolution upgrade of a tile.
func (c *Controller) Hover(ctx context.Context, key ItemKey) error {
	return c.grid.Hover(ctx, key)
}

// Click opens the lightbox on a tile.
func (c *Controller) Click(key ItemKey) (Lightbox, error) {
	return c.grid.Click(key)
}
