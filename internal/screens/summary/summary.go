// Package summary shows the results of one completed practice test.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// headerLines is how many rows the score block above the result list takes.
const headerLines = 9

// SummaryScreen displays a TestSession with its per-question results.
type SummaryScreen struct {
	svc     *deps.Services
	test    *progress.TestSession
	partial bool
	offset  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. partial marks a test whose history write
// failed.
func New(svc *deps.Services, test *progress.TestSession, partial bool) *SummaryScreen {
	return &SummaryScreen{svc: svc, test: test, partial: partial}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.test != nil && s.offset < len(s.test.Results)-1 {
				s.offset++
			}
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	t := s.test
	if t == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Test complete!"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(s.topicLine()))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.ScoreColor(t.Score)).Bold(true).Render(fmt.Sprintf("%d%%", t.Score)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"Questions: %d        Correct: %d        Time: %s",
		t.Questions, t.Correct, formatDuration(t.TotalTime))))
	b.WriteString("\n")
	if s.partial {
		b.WriteString(center.Foreground(theme.Warning).Render("Some of this test could not be saved."))
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(min(width-8, 72), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	rowWidth := min(width-8, 72)
	var rows []string
	for i := s.offset; i < len(t.Results); i++ {
		rows = append(rows, renderResult(i+1, t.Results[i], rowWidth)...)
		if len(rows) >= height-headerLines {
			break
		}
	}
	block := lipgloss.NewStyle().Width(rowWidth).Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	return b.String()
}

func (s *SummaryScreen) topicLine() string {
	subject, subtopic := s.test.Subject, s.test.Subtopic
	if s.svc != nil && s.svc.Bank != nil {
		subject = s.svc.Bank.SubjectTitle(subject)
		subtopic = s.svc.Bank.SubtopicTitle(s.test.Subject, subtopic)
	}
	return fmt.Sprintf("%s · %s · %s", subject, subtopic, s.test.Date.Local().Format("Jan 2, 2006 15:04"))
}

// renderResult renders one answered question as two or three lines.
func renderResult(n int, r progress.QuestionResult, width int) []string {
	mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	if !r.IsCorrect {
		mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := []string{
		fmt.Sprintf("%s %2d. %s", mark, n, layout.Truncate(r.Question, width-6)),
		dim.Render("      You: " + layout.Truncate(orDash(r.UserAnswer), width-12)),
	}
	if !r.IsCorrect && r.CorrectAnswer != "" {
		lines = append(lines, dim.Render("      Answer: "+layout.Truncate(r.CorrectAnswer, width-15)))
	}
	return lines
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// formatDuration renders millis as m:ss.
func formatDuration(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
