package gallery

import (
	"fmt"
	"maps"
	"slices"
)

// SelectionState is the user's gallery selection. Selected keeps insertion
// order, which is also display order.
type SelectionState struct {
	Image    InputImage      `json:"image"`
	Selected []string        `json:"selected"`
	HPO      map[string]bool `json:"hpo"`
}

// NewSelectionState returns the page-load selection of a catalog.
func NewSelectionState(c *Catalog) SelectionState {
	return SelectionState{
		Image:    c.DefaultImage,
		Selected: slices.Clone(c.DefaultModels),
		HPO:      make(map[string]bool),
	}
}

func (s SelectionState) IsSelected(folder string) bool {
	return slices.Contains(s.Selected, folder)
}

func (s SelectionState) clone() SelectionState {
	hpo := maps.Clone(s.HPO)
	if hpo == nil {
		hpo = make(map[string]bool)
	}
	return SelectionState{Image: s.Image, Selected: slices.Clone(s.Selected), HPO: hpo}
}

// Action is a user interaction handled by Reduce.
type Action interface {
	action()
}

type (
	SelectImage struct{ Image InputImage }
	ToggleModel struct{ Folder string }
	ToggleHPO   struct{ Folder string }
)

func (SelectImage) action() {}
func (ToggleModel) action() {}
func (ToggleHPO) action()   {}

// Reduce applies a to s and returns the next state. s is not modified.
func Reduce(c *Catalog, s SelectionState, a Action) (SelectionState, error) {
	next := s.clone()

	switch a := a.(type) {
	case SelectImage:
		if !c.HasImage(a.Image) {
			return s, fmt.Errorf("%w: %+v", ErrUnknownImage, a.Image)
		}
		next.Image = a.Image
	case ToggleModel:
		if _, ok := c.Model(a.Folder); !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownFolder, a.Folder)
		}
		if i := slices.Index(next.Selected, a.Folder); i >= 0 {
			next.Selected = slices.Delete(next.Selected, i, i+1)
		} else {
			next.Selected = append(next.Selected, a.Folder)
		}
	case ToggleHPO:
		if _, ok := c.Model(a.Folder); !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownFolder, a.Folder)
		}
		next.HPO[a.Folder] = !next.HPO[a.Folder]
	default:
		return s, fmt.Errorf("unhandled action %T", a)
	}
	return next, nil
}
