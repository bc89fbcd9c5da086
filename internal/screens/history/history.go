// Package history lists past practice tests with search, filter, sort and
// paging.
package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/analytics"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/screens/summary"
	"github.com/kasambhusal/sajha-gyan/internal/ui/components"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

var sortOrder = []analytics.SortBy{analytics.SortByDate, analytics.SortByScore, analytics.SortByQuestions}

type historyLoadedMsg struct {
	History *progress.TestHistory
}

// HistoryScreen displays past tests.
type HistoryScreen struct {
	svc       *deps.Services
	history   *progress.TestHistory
	subjects  []string // filter cycle; index 0 is AllSubjects
	subject   int
	query     analytics.Query
	page      analytics.Page
	selected  int
	expanded  map[string]bool
	searching bool
	search    components.TextInput
	loaded    bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.BackHandler = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc *deps.Services) *HistoryScreen {
	search := components.NewTextInput("subject or subtopic", 40)
	search.Blur()
	return &HistoryScreen{
		svc:      svc,
		query:    analytics.Query{SortBy: analytics.SortByDate, Page: 1, PerPage: analytics.DefaultPerPage},
		expanded: make(map[string]bool),
		search:   search,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.svc.Repo
	return func() tea.Msg {
		return historyLoadedMsg{History: repo.History(context.Background())}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Page"},
		{Key: "/", Description: "Search"},
		{Key: "f", Description: "Subject"},
		{Key: "s", Description: "Sort"},
		{Key: "Enter", Description: "Expand"},
		{Key: "o", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.history = msg.History
		s.subjects = append([]string{analytics.AllSubjects}, analytics.HistorySubjects(msg.History)...)
		s.subject = 0
		s.loaded = true
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		if s.searching {
			return s.updateSearch(msg)
		}
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.page.Tests)-1 {
				s.selected++
			}
		case "left", "h":
			s.turnPage(-1)
		case "right", "l":
			s.turnPage(1)
		case "/":
			s.searching = true
			return s, s.search.Focus()
		case "f":
			if len(s.subjects) > 0 {
				s.subject = (s.subject + 1) % len(s.subjects)
				s.query.Subject = s.subjects[s.subject]
				s.query.Page = 1
				s.refresh()
			}
		case "s":
			i := slices.Index(sortOrder, s.query.SortBy)
			s.query.SortBy = sortOrder[(i+1)%len(sortOrder)]
			s.query.Page = 1
			s.refresh()
		case "enter":
			if t, ok := s.current(); ok {
				s.expanded[t.ID] = !s.expanded[t.ID]
			}
		case "o":
			if t, ok := s.current(); ok {
				detail := summary.New(s.svc, &t, false)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
		return s, nil
	}

	if s.searching {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HistoryScreen) updateSearch(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.searching = false
		s.search.Blur()
		return s, nil
	case "esc":
		s.searching = false
		s.search.Model.SetValue("")
		s.search.Blur()
		s.query.Search = ""
		s.query.Page = 1
		s.refresh()
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if v := s.search.Value(); v != s.query.Search {
		s.query.Search = v
		s.query.Page = 1
		s.refresh()
	}
	return s, cmd
}

func (s *HistoryScreen) turnPage(delta int) {
	next := s.page.Page + delta
	if next < 1 || next > s.page.TotalPages {
		return
	}
	s.query.Page = next
	s.refresh()
}

// refresh re-runs the query and keeps the selection in range.
func (s *HistoryScreen) refresh() {
	s.page = analytics.QueryHistory(s.history, s.query)
	s.query.Page = s.page.Page
	s.selected = min(s.selected, max(len(s.page.Tests)-1, 0))
}

func (s *HistoryScreen) current() (progress.TestSession, bool) {
	if s.selected < 0 || s.selected >= len(s.page.Tests) {
		return progress.TestSession{}, false
	}
	return s.page.Tests[s.selected], true
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if s.history == nil || len(s.history.Tests) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No tests yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString(center.Render(s.renderControls()))
	b.WriteString("\n\n")

	if len(s.page.Tests) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No tests match."))
		return b.String()
	}

	rowWidth := min(width-4, 90)
	var rows []string
	for i, t := range s.page.Tests {
		rows = append(rows, s.renderRow(t, i == s.selected, rowWidth))
		if s.expanded[t.ID] {
			rows = append(rows, renderExpanded(t, rowWidth)...)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("Page %d of %d · %d test(s)", s.page.Page, max(s.page.TotalPages, 1), s.page.Total)))
	return b.String()
}

func (s *HistoryScreen) renderControls() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	subject := "All subjects"
	if s.query.Subject != "" && s.query.Subject != analytics.AllSubjects {
		subject = s.svc.Bank.SubjectTitle(s.query.Subject)
	}
	search := s.query.Search
	if s.searching {
		search = s.search.View()
	} else if search == "" {
		search = "-"
	}
	return fmt.Sprintf("%s %s   %s %s   %s %s",
		label.Render("Search:"), value.Render(search),
		label.Render("Subject:"), value.Render(subject),
		label.Render("Sort:"), value.Render(string(s.query.SortBy)),
	)
}

func (s *HistoryScreen) renderRow(t progress.TestSession, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}
	topic := s.svc.Bank.SubjectTitle(t.Subject) + " · " + s.svc.Bank.SubtopicTitle(t.Subject, t.Subtopic)
	tail := fmt.Sprintf("  %2d Qs  %s", t.Questions, lipgloss.NewStyle().
		Foreground(theme.ScoreColor(t.Score)).Render(fmt.Sprintf("%3d%%", t.Score)))
	date := t.Date.Local().Format("Jan 02, 2006")
	topicWidth := max(width-lipgloss.Width(prefix)-len(date)-lipgloss.Width(tail)-2, 8)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	line := prefix + date + "  " + padRight(layout.Truncate(topic, topicWidth), topicWidth)
	return style.Render(line) + tail
}

// renderExpanded lists the per-question outcomes under a test row.
func renderExpanded(t progress.TestSession, width int) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := []string{dim.Render(fmt.Sprintf("      %d/%d correct in %s", t.Correct, t.Questions, formatDuration(t.TotalTime)))}
	for _, r := range t.Results {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !r.IsCorrect {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		lines = append(lines, "      "+mark+" "+dim.Render(layout.Truncate(r.Question, width-10)))
	}
	return lines
}

// padRight pads s to n display cells.
func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func formatDuration(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// HandlesBack reports whether Esc should clear the search box rather than
// leave the screen.
func (s *HistoryScreen) HandlesBack() bool {
	return s.searching
}
