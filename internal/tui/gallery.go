package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tensorplex-labs/scamviz/internal/gallery"
)

type galleryFocus int

const (
	focusModels galleryFocus = iota
	focusTiles
)

// preloadDoneMsg is sent once hover preloads have settled.
type preloadDoneMsg struct{}

// GalleryModel is the bubbletea model of the comparison gallery.
type GalleryModel struct {
	ctx     context.Context
	ctrl    *gallery.Controller
	folders []string
	cursor  int
	tile    int
	focus   galleryFocus
	err     error
	width   int
}

func NewGalleryModel(ctx context.Context, ctrl *gallery.Controller) *GalleryModel {
	return &GalleryModel{
		ctx:     ctx,
		ctrl:    ctrl,
		folders: ctrl.Catalog().Folders(),
	}
}

func (m *GalleryModel) Init() tea.Cmd {
	return nil
}

func (m *GalleryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case preloadDoneMsg:
		// re-render only
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *GalleryModel) handleKey(key string) tea.Cmd {
	grid := m.ctrl.Grid()

	if grid.Lightbox().Open {
		switch key {
		case "esc", "enter", "q":
			grid.CloseLightbox()
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	}

	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "tab":
		if m.focus == focusModels {
			m.focus = focusTiles
			return m.hoverTile()
		}
		m.focus = focusModels
	case "i":
		m.dispatch(gallery.SelectImage{Image: m.nextImage()})
	case "up", "k":
		m.move(-1)
		if m.focus == focusTiles {
			return m.hoverTile()
		}
	case "down", "j":
		m.move(1)
		if m.focus == focusTiles {
			return m.hoverTile()
		}
	case " ", "x":
		if m.focus == focusModels && len(m.folders) > 0 {
			m.dispatch(gallery.ToggleModel{Folder: m.folders[m.cursor]})
		}
	case "h":
		if m.focus == focusModels && len(m.folders) > 0 {
			m.dispatch(gallery.ToggleHPO{Folder: m.folders[m.cursor]})
		}
	case "enter":
		if el, ok := m.currentTile(); ok {
			_, m.err = m.ctrl.Click(el.Key)
		}
	}
	return nil
}

func (m *GalleryModel) move(step int) {
	n := len(m.folders)
	cur := &m.cursor
	if m.focus == focusTiles {
		n = len(m.ctrl.Grid().Snapshot())
		cur = &m.tile
	}
	if n == 0 {
		return
	}
	*cur = ((*cur+step)%n + n) % n
}

func (m *GalleryModel) dispatch(a gallery.Action) {
	m.err = m.ctrl.Dispatch(a)
	if n := len(m.ctrl.Grid().Snapshot()); m.tile >= n {
		m.tile = max(n-1, 0)
	}
}

func (m *GalleryModel) nextImage() gallery.InputImage {
	images := m.ctrl.Catalog().Images
	cur := m.ctrl.State().Image
	if len(images) == 0 {
		return cur
	}
	i := slices.Index(images, cur)
	return images[(i+1)%len(images)]
}

func (m *GalleryModel) currentTile() (gallery.Element, bool) {
	tiles := m.ctrl.Grid().Snapshot()
	if m.focus != focusTiles || m.tile >= len(tiles) {
		return gallery.Element{}, false
	}
	return tiles[m.tile], true
}

// hoverTile starts the full resolution preload of the focused tile and
// reports back once it settled.
func (m *GalleryModel) hoverTile() tea.Cmd {
	el, ok := m.currentTile()
	if !ok || el.FullRes {
		return nil
	}
	if m.err = m.ctrl.Hover(m.ctx, el.Key); m.err != nil {
		return nil
	}
	grid := m.ctrl.Grid()
	return func() tea.Msg {
		grid.Wait()
		return preloadDoneMsg{}
	}
}

func (m *GalleryModel) View() string {
	state := m.ctrl.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Model gallery"))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Render(state.Image.Type + "/" + state.Image.Filename))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Input:"), gallery.RawPath(state.Image))

	if lb := m.ctrl.Grid().Lightbox(); lb.Open {
		b.WriteString(panelStyle.Render(titleStyle.Render(lb.Caption) + "\n" + lb.Src))
		b.WriteString(helpStyle.Render("\nesc close"))
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.modelList(state), m.tileList()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ move • space toggle • h HPO • i next image • tab focus • enter build-up • q quit"))
	return lipgloss.NewStyle().MaxWidth(max(m.width, 0)).Render(b.String())
}

func (m *GalleryModel) modelList(state gallery.SelectionState) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Models"))
	for i, folder := range m.folders {
		desc, _ := m.ctrl.Catalog().Model(folder)

		check := "[ ]"
		if state.IsSelected(folder) {
			check = "[x]"
		}
		hpo := ""
		if state.HPO[folder] {
			hpo = " HPO"
		}
		line := fmt.Sprintf("%s %s%s", check, desc.Name, hpo)
		if m.focus == focusModels && i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString("\n" + line)
	}
	return panelStyle.Render(b.String())
}

func (m *GalleryModel) tileList() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Results"))
	for i, el := range m.ctrl.Grid().Snapshot() {
		res := "thumb"
		if el.FullRes {
			res = "full"
		}
		line := fmt.Sprintf("%-24s %-5s %s", el.Label, res, el.Src)
		if m.focus == focusTiles && i == m.tile {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString("\n" + line)
	}
	return panelStyle.Render(b.String())
}
