package explorer

import "github.com/tensorplex-labs/scamviz/internal/simdata"

// MasterList is the union of image ids over every family, in first-seen
// order. It defines one navigation order shared by all modes.
type MasterList struct {
	ids []string
	pos map[string]int
}

func NewMasterList(datasets ...*simdata.Dataset) *MasterList {
	ml := &MasterList{pos: make(map[string]int)}
	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		for _, entry := range ds.Entries() {
			if _, seen := ml.pos[entry.ImageID]; seen {
				continue
			}
			ml.pos[entry.ImageID] = len(ml.ids)
			ml.ids = append(ml.ids, entry.ImageID)
		}
	}
	return ml
}

func (m *MasterList) Len() int { return len(m.ids) }

// At returns the id at position i, or "" when out of range.
func (m *MasterList) At(i int) string {
	if i < 0 || i >= len(m.ids) {
		return ""
	}
	return m.ids[i]
}

// IndexOf returns the position of id, or -1.
func (m *MasterList) IndexOf(id string) int {
	if i, ok := m.pos[id]; ok {
		return i
	}
	return -1
}

// Next wraps from the last id to the first. An unknown id moves to the first.
func (m *MasterList) Next(id string) string {
	if len(m.ids) == 0 {
		return ""
	}
	i := m.IndexOf(id)
	if i < len(m.ids)-1 {
		return m.ids[i+1]
	}
	return m.ids[0]
}

// Prev wraps from the first id to the last. An unknown id moves to the last.
func (m *MasterList) Prev(id string) string {
	if len(m.ids) == 0 {
		return ""
	}
	i := m.IndexOf(id)
	if i > 0 {
		return m.ids[i-1]
	}
	return m.ids[len(m.ids)-1]
}

// FirstIn returns the first id, in master order, that ds contains.
func (m *MasterList) FirstIn(ds *simdata.Dataset) (string, bool) {
	for _, id := range m.ids {
		if ds.Has(id) {
			return id, true
		}
	}
	return "", false
}
