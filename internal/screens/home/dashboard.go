package home

import (
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/analytics"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
	"github.com/kasambhusal/sajha-gyan/internal/ui/components"
	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// dashboard is the learner summary shown above the menu.
type dashboard struct {
	Name      string
	Tests     int
	Questions int
	Accuracy  int // percent
	WeakAreas int
	LastScore int
	HasLast   bool
}

func loadDashboard(ctx context.Context, svc *deps.Services) dashboard {
	var d dashboard
	if p := svc.Repo.Profile(ctx); p != nil {
		d.Name = p.Name
		d.Tests = p.TotalTests
	}
	prog := svc.Repo.Progress(ctx)
	stats := analytics.OverallStats(prog)
	d.Questions = stats.TotalQuestions
	d.Accuracy = stats.Accuracy
	d.WeakAreas = len(studyplan.Derive(prog).WeakAreas)
	if h := svc.Repo.History(ctx); len(h.Tests) > 0 {
		d.HasLast = true
		d.LastScore = h.Tests[0].Score
	}
	return d
}

const titleFull = `╔═╗┌─┐ ┬┬ ┬┌─┐  ╔═╗┬ ┬┌─┐┌┐┌
╚═╗├─┤ │├─┤├─┤  ║ ╦└┬┘├─┤│││
╚═╝┴ ┴└┘┴ ┴┴ ┴  ╚═╝ ┴ ┴ ┴┘└┘`

const titleCompact = "S A J H A   G Y A N"

// renderTitle returns the styled title block or its compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(text))
}

func renderGreeting(name string, cw int) string {
	if name == "" {
		name = "learner"
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Namaste, %s!", name))
}

// renderStatsBar renders the dashboard numbers in a double-bordered box.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	testStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	qStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.ScoreColor(d.Accuracy)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			testStyle.Render(fmt.Sprintf("T%d", d.Tests)),
			qStyle.Render(fmt.Sprintf("Q%d", d.Questions)),
			accStyle.Render(fmt.Sprintf("%d%%", d.Accuracy)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			testStyle.Render(fmt.Sprintf("%d TESTS", d.Tests)),
			qStyle.Render(fmt.Sprintf("%d QUESTIONS", d.Questions)),
			accStyle.Render(fmt.Sprintf("%d%% ACCURACY", d.Accuracy)),
		)
	}
	if d.Questions == 0 {
		stats = dim.Render("No practice yet")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderWeakNote(weak, cw int) string {
	if weak == 0 {
		return ""
	}
	noun := "area needs"
	if weak > 1 {
		noun = "areas need"
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Warning).
		Render(fmt.Sprintf("%d %s attention: see your study plan", weak, noun))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each item as a fixed-width button.
func renderMenu(items []string, selected, cw int) string {
	buttons := make([]string, len(items))
	for i, label := range items {
		buttons[i] = components.MenuButton(label, i == selected, false, buttonWidth)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders items as plain lines for terminals where
// bordered buttons would overflow.
func renderMenuCompact(items []string, selected, cw int) string {
	lines := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			lines[i] = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}
