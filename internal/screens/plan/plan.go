// Package plan shows the study plan: weak areas, strengths and the
// recommendations derived from them.
package plan

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	sessionscreen "github.com/kasambhusal/sajha-gyan/internal/screens/session"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
	"github.com/kasambhusal/sajha-gyan/internal/ui/components"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// Tab is a section of the plan.
type Tab int

const (
	TabWeak Tab = iota
	TabStrengths
	TabRecommendations
	TabGoals
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabWeak:
		return "Weak Areas"
	case TabStrengths:
		return "Strengths"
	case TabRecommendations:
		return "Recommendations"
	case TabGoals:
		return "Goals"
	}
	return ""
}

type planLoadedMsg struct {
	Plan *progress.StudyPlan
	Err  error
}

// PlanScreen displays the study plan.
type PlanScreen struct {
	svc      *deps.Services
	plan     *progress.StudyPlan
	tab      Tab
	selected int
	loaded   bool
	stale    bool // the refreshed plan could not be cached
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates a new PlanScreen.
func New(svc *deps.Services) *PlanScreen {
	return &PlanScreen{svc: svc}
}

func (s *PlanScreen) Init() tea.Cmd {
	return s.load()
}

func (s *PlanScreen) load() tea.Cmd {
	plans := s.svc.Plans
	return func() tea.Msg {
		p, err := plans.Refresh(context.Background())
		return planLoadedMsg{Plan: p, Err: err}
	}
}

func (s *PlanScreen) Title() string {
	return "Study Plan"
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Section"},
		{Key: "↑↓", Description: "Navigate"},
	}
	if s.tab == TabWeak || s.tab == TabRecommendations {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Practice"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		s.plan = msg.Plan
		s.stale = msg.Err != nil
		s.loaded = true
		s.selected = min(s.selected, max(s.count()-1, 0))
		return s, nil

	case router.ResumedMsg:
		return s, s.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "right", "l":
			s.tab = (s.tab + 1) % tabCount
			s.selected = 0
		case "shift+tab", "left", "h":
			s.tab = (s.tab + tabCount - 1) % tabCount
			s.selected = 0
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.count()-1 {
				s.selected++
			}
		case "enter":
			return s, s.practice()
		}
	}
	return s, nil
}

// count returns the number of items in the current tab.
func (s *PlanScreen) count() int {
	if s.plan == nil {
		return 0
	}
	switch s.tab {
	case TabWeak:
		return len(s.plan.WeakAreas)
	case TabStrengths:
		return len(s.plan.Strengths)
	case TabRecommendations:
		return len(s.plan.Recommendations)
	case TabGoals:
		return len(s.plan.NextGoals)
	}
	return 0
}

// practice opens a session for the selected weak area or recommendation.
func (s *PlanScreen) practice() tea.Cmd {
	if s.plan == nil || s.selected >= s.count() {
		return nil
	}
	var subjectID, subtopicID string
	switch s.tab {
	case TabWeak:
		a := s.plan.WeakAreas[s.selected]
		subjectID, subtopicID = a.SubjectID, a.SubtopicID
	case TabRecommendations:
		r := s.plan.Recommendations[s.selected]
		subjectID, subtopicID = r.Subject, r.Subtopic
	default:
		return nil
	}
	next := sessionscreen.New(s.svc, subjectID, subtopicID)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *PlanScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Building your plan...")
	}

	var b strings.Builder
	b.WriteString(center.Render(s.renderTabs()))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	lines := s.renderItems(cw - 4)
	if len(lines) == 0 {
		lines = []string{theme.Hint.Render(s.emptyText())}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(s.tab.String(), lines, cw)))
	b.WriteString("\n")

	if s.plan != nil && s.plan.LastUpdated != nil {
		b.WriteString(center.Foreground(theme.TextDim).Render(
			"Updated " + s.plan.LastUpdated.Local().Format("Jan 2, 2006 15:04")))
	}
	if s.stale {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Warning).Render("This plan could not be saved."))
	}
	return b.String()
}

func (s *PlanScreen) renderTabs() string {
	var tabs []string
	for t := TabWeak; t < tabCount; t++ {
		label := fmt.Sprintf(" %s (%d) ", t, s.countFor(t))
		if t == s.tab {
			tabs = append(tabs, lipgloss.NewStyle().
				Foreground(theme.BgDark).Background(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (s *PlanScreen) countFor(t Tab) int {
	saved := s.tab
	s.tab = t
	n := s.count()
	s.tab = saved
	return n
}

func (s *PlanScreen) emptyText() string {
	switch s.tab {
	case TabWeak:
		return "No weak areas. Keep it up!"
	case TabStrengths:
		return fmt.Sprintf("Answer at least %d questions in a subtopic at %d%% or better to build a strength.",
			studyplan.StrongMinAttempts, studyplan.Percent(studyplan.StrongAccuracy))
	case TabRecommendations:
		return "Nothing to work on right now."
	}
	return "No goals set."
}

func (s *PlanScreen) renderItems(width int) []string {
	if s.plan == nil {
		return nil
	}
	cursor := func(i int) string {
		if i == s.selected {
			return lipgloss.NewStyle().Foreground(theme.Primary).Render("▸ ")
		}
		return "  "
	}

	var lines []string
	switch s.tab {
	case TabWeak:
		for i, a := range s.plan.WeakAreas {
			lines = append(lines, cursor(i)+s.renderArea(a, theme.Warning, width-2))
		}
	case TabStrengths:
		for i, a := range s.plan.Strengths {
			lines = append(lines, cursor(i)+s.renderArea(a, theme.Success, width-2))
		}
	case TabRecommendations:
		for i, r := range s.plan.Recommendations {
			pri := lipgloss.NewStyle().Foreground(priorityColor(r.Priority)).Render("[" + r.Priority + "]")
			lines = append(lines, cursor(i)+pri+" "+layout.Truncate(r.Message, width-lipgloss.Width(pri)-3))
		}
	case TabGoals:
		for i, g := range s.plan.NextGoals {
			lines = append(lines, cursor(i)+layout.Truncate(g, width-2))
		}
	}
	return lines
}

func (s *PlanScreen) renderArea(a progress.Area, fg color.Color, width int) string {
	topic := s.svc.Bank.SubjectTitle(a.SubjectID) + " · " + s.svc.Bank.SubtopicTitle(a.SubjectID, a.SubtopicID)
	stat := fmt.Sprintf("%3d%% of %d", studyplan.Percent(a.Accuracy), a.Attempted)
	topicWidth := max(width-lipgloss.Width(stat)-2, 8)
	name := layout.Truncate(topic, topicWidth)
	if w := lipgloss.Width(name); w < topicWidth {
		name += strings.Repeat(" ", topicWidth-w)
	}
	return name + "  " + lipgloss.NewStyle().Foreground(fg).Render(stat)
}

func priorityColor(p string) color.Color {
	if p == "high" {
		return theme.Error
	}
	return theme.Info
}
