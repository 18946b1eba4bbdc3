package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tensorplex-labs/scamviz/internal/explorer"
	"github.com/tensorplex-labs/scamviz/internal/simdata"
)

// ExplorerModel is the bubbletea model of the similarity explorer.
type ExplorerModel struct {
	ctrl  *explorer.Controller
	view  explorer.View
	err   error
	width int
}

func NewExplorerModel(ctrl *explorer.Controller) *ExplorerModel {
	m := &ExplorerModel{ctrl: ctrl}
	m.view, m.err = ctrl.View()
	return m
}

func (m *ExplorerModel) Init() tea.Cmd {
	return nil
}

func (m *ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		if ev := m.eventFor(msg.String()); ev != nil {
			m.dispatch(ev)
		}
	}
	return m, nil
}

func (m *ExplorerModel) eventFor(key string) explorer.Event {
	state := m.ctrl.State()

	switch key {
	case "right", "l", "n":
		return explorer.NextExample{}
	case "left", "h", "p":
		return explorer.PrevExample{}
	case "]":
		return explorer.NextPrompt{}
	case "[":
		return explorer.PrevPrompt{}
	case "tab", "m":
		if state.Mode == simdata.FamilyVLM {
			return explorer.SetMode{Mode: simdata.FamilyLVLM}
		}
		return explorer.SetMode{Mode: simdata.FamilyVLM}
	case "down", "j":
		return m.stepModel(state.Model, 1)
	case "up", "k":
		return m.stepModel(state.Model, -1)
	}
	return nil
}

func (m *ExplorerModel) stepModel(current string, step int) explorer.Event {
	models := m.view.Models
	if len(models) == 0 {
		return nil
	}
	i := slices.Index(models, current)
	i = ((i+step)%len(models) + len(models)) % len(models)
	return explorer.SelectModel{Model: models[i]}
}

func (m *ExplorerModel) dispatch(ev explorer.Event) {
	v, err := m.ctrl.Dispatch(ev)
	m.err = err
	if err == nil {
		m.view = v
		return
	}
	// the state moved even if this image has no row in the active family
	if errors.Is(err, simdata.ErrImageNotFound) {
		m.view.State = m.ctrl.State()
	}
}

func (m *ExplorerModel) View() string {
	v := m.view

	var b strings.Builder
	b.WriteString(titleStyle.Render("Similarity explorer"))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Render(strings.ToUpper(string(v.Mode))))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d / %d  %s %d\n",
		labelStyle.Render("Example"), v.ExampleNumber, v.MasterTotal,
		labelStyle.Render("in mode:"), v.ModeTotal)
	fmt.Fprintf(&b, "%s %s  %s %s  %s %.2f%%\n",
		labelStyle.Render("Object:"), v.ObjectLabel,
		labelStyle.Render("Attack:"), v.AttackWord,
		labelStyle.Render("Post-it area:"), v.PostitAreaPct)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Model:"), v.Model)
	b.WriteString(m.modelInfo())
	b.WriteString("\n")

	for _, vv := range v.Variants {
		b.WriteString(renderVariant(vv))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("←/→ example • ↑/↓ model • tab mode • [/] prompt • q quit"))
	return lipgloss.NewStyle().MaxWidth(max(m.width, 0)).Render(b.String())
}

func (m *ExplorerModel) modelInfo() string {
	info := m.view.ModelInfo
	if info.ShowPrompt {
		return fmt.Sprintf("%s %d: %s\n", labelStyle.Render("Prompt"), m.view.Prompt+1, info.Prompt)
	}
	return fmt.Sprintf("%s %s  %s %s\n",
		labelStyle.Render("Params:"), info.Params,
		labelStyle.Render("Image size:"), info.ImageSize)
}

func renderVariant(vv explorer.VariantView) string {
	objMarker, atkMarker := -1.0, -1.0
	if vv.ObjectMean != nil {
		objMarker = vv.ObjectMean.Position
	}
	if vv.AttackMean != nil {
		atkMarker = vv.AttackMean.Position
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(vv.Variant), labelStyle.Render(vv.ImagePath))
	fmt.Fprintf(&b, "  object %s %s\n", bar(vv.Bar.ObjectWidth, vv.Bar.ObjectColor, objMarker), vv.Bar.ObjectText)
	fmt.Fprintf(&b, "  attack %s %s\n", bar(vv.Bar.AttackWidth, vv.Bar.AttackColor, atkMarker), vv.Bar.AttackText)
	return b.String()
}
