// Package tui holds the bubbletea front ends of the explorer and gallery.
package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barCells = 40

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	badgeStyle  = lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginRight(1)
)

// bar draws a horizontal bar of widthPct percent of barCells in color, with
// a marker cell at markerPct when it is not negative.
func bar(widthPct float64, color string, markerPct float64) string {
	filled := cells(widthPct)
	marker := -1
	if markerPct >= 0 {
		marker = min(cells(markerPct), barCells-1)
	}

	var b strings.Builder
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	for i := range barCells {
		switch {
		case i == marker:
			b.WriteString(cursorStyle.Render("|"))
		case i < filled:
			b.WriteString(fill.Render("█"))
		default:
			b.WriteString(labelStyle.Render("·"))
		}
	}
	return b.String()
}

func cells(pct float64) int {
	if math.IsNaN(pct) || pct <= 0 {
		return 0
	}
	return min(int(math.Round(pct/100*barCells)), barCells)
}
