package gallery

import "fmt"

// ItemKey identifies a rendered result. Elements with an unchanged key are
// reused across renders. Type is part of the key since file names repeat
// across input datasets.
type ItemKey struct {
	Type     string
	Folder   string
	HPO      bool
	Filename string
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s|%s|%t|%s", k.Type, k.Folder, k.HPO, k.Filename)
}

// RenderItem is one desired result tile.
type RenderItem struct {
	Key        ItemKey
	Label      string
	FullSrc    string
	ThumbSrc   string
	BuildupSrc string
}

// DesiredItems lists the tiles for s in selection order.
func DesiredItems(c *Catalog, s SelectionState) []RenderItem {
	items := make([]RenderItem, 0, len(s.Selected))
	for _, folder := range s.Selected {
		m, ok := c.Model(folder)
		if !ok {
			continue
		}
		hpo := s.HPO[folder]

		label := m.Name
		if hpo {
			label += " (HPO)"
		}
		full := ResultPath(s.Image, folder, hpo)

		items = append(items, RenderItem{
			Key:        ItemKey{Type: s.Image.Type, Folder: folder, HPO: hpo, Filename: s.Image.Filename},
			Label:      label,
			FullSrc:    full,
			ThumbSrc:   ThumbnailPath(s.Image, folder, hpo),
			BuildupSrc: BuildupPath(full),
		})
	}
	return items
}
