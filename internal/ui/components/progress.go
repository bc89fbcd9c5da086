package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a 0-100 percentage.
type ProgressBar struct {
	Label      string
	LabelWidth int // pad labels to line bars up; 0 uses the label's width
	Percent    int
	Width      int
	Color      color.Color // nil uses theme.Secondary
}

// NewProgressBar creates a progress bar.
func NewProgressBar(label string, percent, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

// View renders the label, the bar and the percentage.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		label := p.Label
		if p.LabelWidth > 0 {
			label = fmt.Sprintf("%-*s", p.LabelWidth, label)
		}
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	const percentWidth = 6 // "  100%"
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)

	pct := min(max(p.Percent, 0), 100)
	filled := barWidth * pct / 100
	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%5d%%", pct))
	return result
}
