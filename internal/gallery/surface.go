package gallery

import "sync"

// Element is a rendered result tile. Its identity is stable for as long as
// its key stays in the desired set.
type Element struct {
	ID      uint64
	Key     ItemKey
	Src     string
	Label   string
	Buildup string
	FullRes bool

	// pending is the full resolution source a preload is fetching for
	// this element, empty when none is in flight
	pending string
}

// Surface is a render target the grid drives with minimal edits.
type Surface interface {
	// Insert places el after the given element, or first when after is nil.
	Insert(el, after *Element)
	// Move repositions an already inserted element the same way.
	Move(el, after *Element)
	Remove(el *Element)
	// Update is called when src, label or buildup of el changed.
	Update(el *Element)
}

// EditCounts tallies the edits a surface received.
type EditCounts struct {
	Inserted int
	Moved    int
	Removed  int
	Updated  int
}

// MemorySurface keeps the rendered order in memory and counts edits.
type MemorySurface struct {
	mu     sync.Mutex
	order  []*Element
	counts EditCounts
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (m *MemorySurface) Insert(el, after *Element) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts.Inserted++
	m.place(el, after)
}

func (m *MemorySurface) Move(el, after *Element) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts.Moved++
	m.detach(el)
	m.place(el, after)
}

func (m *MemorySurface) Remove(el *Element) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts.Removed++
	m.detach(el)
}

func (m *MemorySurface) Update(*Element) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts.Updated++
}

// Elements returns the rendered elements in display order.
func (m *MemorySurface) Elements() []*Element {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Element, len(m.order))
	copy(out, m.order)
	return out
}

// Counts returns the edits received so far.
func (m *MemorySurface) Counts() EditCounts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts
}

// ResetCounts zeroes the edit counters.
func (m *MemorySurface) ResetCounts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = EditCounts{}
}

func (m *MemorySurface) detach(el *Element) {
	for i, e := range m.order {
		if e == el {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

func (m *MemorySurface) place(el, after *Element) {
	at := 0
	if after != nil {
		for i, e := range m.order {
			if e == after {
				at = i + 1
				break
			}
		}
	}
	m.order = append(m.order, nil)
	copy(m.order[at+1:], m.order[at:])
	m.order[at] = el
}
