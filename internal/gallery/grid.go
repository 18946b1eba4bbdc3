package gallery

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/scamviz/internal/keyeddiff"
)

// FullResolutionLimit is the largest tile count shown at full resolution
// straight away. Bigger grids start on thumbnails.
const FullResolutionLimit = 2

// Lightbox is the overlay showing a tile's animated build-up.
type Lightbox struct {
	Open    bool    `json:"open"`
	Src     string  `json:"src"`
	Caption string  `json:"caption"`
	Key     ItemKey `json:"-"`
}

// Grid reconciles desired tiles against rendered elements by key.
type Grid struct {
	mu        sync.Mutex
	surface   Surface
	preloader Preloader
	elements  map[ItemKey]*Element
	order     []ItemKey
	items     map[ItemKey]RenderItem
	lightbox  Lightbox
	nextID    uint64
	inflight  sync.WaitGroup
}

func NewGrid(surface Surface, preloader Preloader) *Grid {
	if preloader == nil {
		preloader = NoopPreloader{}
	}
	return &Grid{
		surface:   surface,
		preloader: preloader,
		elements:  make(map[ItemKey]*Element),
		items:     make(map[ItemKey]RenderItem),
	}
}

// Render brings the surface in line with items. Unchanged tiles keep their
// element; only out-of-order tiles are moved.
func (g *Grid) Render(items []RenderItem) {
	g.mu.Lock()
	defer g.mu.Unlock()

	keys := make([]ItemKey, len(items))
	desired := make(map[ItemKey]RenderItem, len(items))
	for i, it := range items {
		keys[i] = it.Key
		desired[it.Key] = it
	}
	lazy := len(items) > FullResolutionLimit

	inserted := make(map[ItemKey]bool)
	for _, op := range keyeddiff.Diff(g.order, keys) {
		var after *Element
		if op.HasAfter {
			after = g.elements[op.After]
		}

		switch op.Kind {
		case keyeddiff.OpRemove:
			el := g.elements[op.Key]
			delete(g.elements, op.Key)
			delete(g.items, op.Key)
			g.surface.Remove(el)
			if g.lightbox.Open && g.lightbox.Key == op.Key {
				g.lightbox = Lightbox{}
			}
		case keyeddiff.OpInsert:
			el := g.newElement(desired[op.Key], lazy)
			g.elements[op.Key] = el
			inserted[op.Key] = true
			g.surface.Insert(el, after)
		case keyeddiff.OpMove:
			g.surface.Move(g.elements[op.Key], after)
		}
	}

	for _, it := range items {
		g.items[it.Key] = it
		if inserted[it.Key] {
			continue
		}
		if g.refresh(g.elements[it.Key], it, lazy) {
			g.surface.Update(g.elements[it.Key])
		}
	}
	g.order = keys

	log.Debug().Int("items", len(items)).Bool("lazy", lazy).Msg("gallery grid rendered")
}

func (g *Grid) newElement(it RenderItem, lazy bool) *Element {
	g.nextID++
	el := &Element{
		ID:      g.nextID,
		Key:     it.Key,
		Label:   it.Label,
		Buildup: it.BuildupSrc,
		Src:     it.FullSrc,
		FullRes: true,
	}
	if lazy {
		el.Src = it.ThumbSrc
		el.FullRes = false
	}
	return el
}

// refresh updates a reused element and reports whether anything changed.
// A full resolution source is never swapped back for a thumbnail.
func (g *Grid) refresh(el *Element, it RenderItem, lazy bool) bool {
	changed := false
	if el.Label != it.Label {
		el.Label = it.Label
		changed = true
	}
	if el.Buildup != it.BuildupSrc {
		el.Buildup = it.BuildupSrc
		changed = true
	}

	want := it.ThumbSrc
	if el.FullRes || !lazy {
		want = it.FullSrc
	}
	if el.Src != want {
		el.Src = want
		changed = true
	}
	if !lazy && !el.FullRes {
		el.FullRes = true
		el.pending = ""
	}
	// an in-flight preload for a previous target must not land
	if el.pending != "" && el.pending != it.FullSrc {
		el.pending = ""
	}
	return changed
}

// Hover upgrades a thumbnail to full resolution once the full image has
// been preloaded. The swap is dropped when the element was removed or
// retargeted while the preload ran.
func (g *Grid) Hover(ctx context.Context, key ItemKey) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	el, ok := g.elements[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, key)
	}
	if el.FullRes || el.pending != "" {
		return nil
	}

	target := g.items[key].FullSrc
	el.pending = target

	g.inflight.Add(1)
	go func() {
		defer g.inflight.Done()
		err := g.preloader.Preload(ctx, target)
		g.commit(el, target, err)
	}()
	return nil
}

func (g *Grid) commit(el *Element, target string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if el.pending != target {
		log.Debug().Str("target", target).Msg("dropping superseded preload")
		return
	}
	el.pending = ""

	if err != nil {
		log.Warn().Err(err).Str("src", target).Msg("full resolution preload failed")
		return
	}
	if g.elements[el.Key] != el {
		log.Debug().Str("target", target).Msg("dropping preload for removed tile")
		return
	}
	if g.items[el.Key].FullSrc != target {
		log.Debug().Str("target", target).Msg("dropping preload for retargeted tile")
		return
	}

	el.Src = target
	el.FullRes = true
	g.surface.Update(el)
}

// Click opens the lightbox on a tile's build-up animation.
func (g *Grid) Click(key ItemKey) (Lightbox, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	el, ok := g.elements[key]
	if !ok {
		return Lightbox{}, fmt.Errorf("%w: %s", ErrUnknownItem, key)
	}
	g.lightbox = Lightbox{Open: true, Src: el.Buildup, Caption: el.Label, Key: key}
	return g.lightbox, nil
}

func (g *Grid) CloseLightbox() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lightbox = Lightbox{}
}

func (g *Grid) Lightbox() Lightbox {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lightbox
}

// Snapshot copies the rendered elements in display order.
func (g *Grid) Snapshot() []Element {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Element, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.elements[k])
	}
	return out
}

// Wait blocks until every in-flight preload has finished.
func (g *Grid) Wait() {
	g.inflight.Wait()
}
