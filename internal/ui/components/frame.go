package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// ContentWidth returns the uniform inner width for boxed sections in a
// frame of the given width, so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	// frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// Frame wraps content in a double border, centered in the given area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel renders a titled, rounded box at content width cw. Lines are left
// aligned inside the box.
func Panel(title string, lines []string, cw int) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(theme.Section.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(b.String())
}

// MenuButton renders a fixed-width bordered button.
func MenuButton(label string, selected, disabled bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	switch {
	case disabled:
		return style.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label)
	case selected:
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Accent).
			BorderForeground(theme.Accent).
			Render("▸ " + label)
	}
	return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
}
