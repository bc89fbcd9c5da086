// Package stats shows learning analytics: overall numbers, per-subject
// breakdown, insights, difficulty and weekly activity.
package stats

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/analytics"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/ui/components"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

type statsLoadedMsg struct {
	Profile  *progress.Profile
	Progress *progress.Progress
	History  *progress.TestHistory
}

type reportSavedMsg struct {
	Path string
	Err  error
}

// StatsScreen renders analytics as a scrollable stack of panels.
type StatsScreen struct {
	svc     *deps.Services
	data    statsLoadedMsg
	loaded  bool
	offset  int
	lastLen int
	notice  string
	failed  bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(svc *deps.Services) *StatsScreen {
	return &StatsScreen{svc: svc}
}

func (s *StatsScreen) Init() tea.Cmd {
	repo := s.svc.Repo
	return func() tea.Msg {
		ctx := context.Background()
		return statsLoadedMsg{
			Profile:  repo.Profile(ctx),
			Progress: repo.Progress(ctx),
			History:  repo.History(ctx),
		}
	}
}

func (s *StatsScreen) Title() string {
	return "My Progress"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "e", Description: "Export report"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.data = msg
		s.loaded = true
		return s, nil

	case reportSavedMsg:
		if msg.Err != nil {
			s.notice, s.failed = "Export failed: "+msg.Err.Error(), true
			s.svc.Logger().Warn("progress report not exported", "error", msg.Err)
		} else {
			s.notice, s.failed = "Report saved to "+msg.Path, false
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < s.lastLen-1 {
				s.offset++
			}
		case "e":
			if s.loaded {
				return s, s.export()
			}
		}
	}
	return s, nil
}

// export writes the progress report as JSON into the report directory.
func (s *StatsScreen) export() tea.Cmd {
	report := analytics.BuildReport(s.svc.Bank, s.data.Profile, s.data.Progress, s.data.History, s.svc.Clock())
	name := ""
	if s.data.Profile != nil {
		name = s.data.Profile.Name
	}
	path := filepath.Join(s.svc.ReportDir, analytics.ReportFileName(name, s.svc.Clock()))
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return reportSavedMsg{Err: err}
		}
		if err := analytics.WriteReport(f, report); err != nil {
			f.Close()
			return reportSavedMsg{Err: err}
		}
		return reportSavedMsg{Path: path, Err: f.Close()}
	}
}

func (s *StatsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Crunching numbers...")
	}

	cw := components.ContentWidth(width)
	var blocks []string
	blocks = append(blocks, s.renderOverall(cw))
	blocks = append(blocks, s.renderSubjects(cw))
	blocks = append(blocks, s.renderInsights(cw))
	blocks = append(blocks, s.renderDifficulty(cw))
	blocks = append(blocks, s.renderWeek(cw))

	lines := strings.Split(strings.Join(blocks, "\n"), "\n")
	s.lastLen = len(lines)
	s.offset = min(s.offset, max(len(lines)-1, 0))

	avail := height
	if s.notice != "" {
		avail--
	}
	end := min(s.offset+max(avail, 1), len(lines))
	body := lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines[s.offset:end], "\n"))
	if s.notice != "" {
		fg := theme.Success
		if s.failed {
			fg = theme.Error
		}
		body += "\n" + center.Foreground(fg).Render(s.notice)
	}
	return body
}

func (s *StatsScreen) renderOverall(cw int) string {
	st := analytics.OverallStats(s.data.Progress)
	tests := 0
	if s.data.Profile != nil {
		tests = s.data.Profile.TotalTests
	}
	bold := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	lines := []string{
		fmt.Sprintf("Tests taken      %s", bold.Render(fmt.Sprint(tests))),
		fmt.Sprintf("Questions        %s", bold.Render(fmt.Sprint(st.TotalQuestions))),
		fmt.Sprintf("Correct answers  %s", bold.Render(fmt.Sprint(st.CorrectAnswers))),
		fmt.Sprintf("Accuracy         %s", lipgloss.NewStyle().Bold(true).
			Foreground(theme.ScoreColor(st.Accuracy)).Render(fmt.Sprintf("%d%%", st.Accuracy))),
		fmt.Sprintf("Study time       %s", bold.Render(fmt.Sprintf("%d min", st.TotalTime))),
	}
	return components.Panel("Overview", lines, cw)
}

func (s *StatsScreen) renderSubjects(cw int) string {
	breakdown := analytics.SubjectBreakdown(s.svc.Bank, s.data.Progress)
	if len(breakdown) == 0 {
		return components.Panel("Subjects", []string{theme.Hint.Render("Practice a subtopic to see subject stats.")}, cw)
	}
	labelWidth := 0
	for _, b := range breakdown {
		labelWidth = max(labelWidth, lipgloss.Width(b.Title))
	}
	labelWidth = min(labelWidth, 20)

	var lines []string
	for _, b := range breakdown {
		bar := components.ProgressBar{
			Label:      layout.Truncate(b.Title, labelWidth),
			LabelWidth: labelWidth,
			Percent:    b.Accuracy,
			Width:      cw - 4,
			Color:      theme.SubjectColor(b.Color),
		}
		lines = append(lines, bar.View())
		lines = append(lines, theme.Hint.Render(fmt.Sprintf(
			"%*s  %d/%d correct · %d%% of subtopics touched", labelWidth, "", b.Correct, b.Attempted, b.Progress)))
	}
	return components.Panel("Subjects", lines, cw)
}

func (s *StatsScreen) renderInsights(cw int) string {
	insights := analytics.Insights(s.svc.Bank, s.data.Progress, s.data.History)
	if len(insights) == 0 {
		return components.Panel("Insights", []string{theme.Hint.Render("Complete a few tests to unlock insights.")}, cw)
	}
	var lines []string
	for i, in := range insights {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Foreground(insightColor(in.Kind)).Render(in.Title),
			lipgloss.NewStyle().Width(cw-4).Foreground(theme.Text).Render(in.Message),
			theme.Hint.Render("→ "+in.Action),
		)
	}
	return components.Panel("Insights", lines, cw)
}

func (s *StatsScreen) renderDifficulty(cw int) string {
	var lines []string
	for _, d := range analytics.DifficultyScores(s.data.History) {
		bar := components.ProgressBar{
			Label:      strings.ToUpper(string(d.Difficulty[:1])) + string(d.Difficulty[1:]),
			LabelWidth: 6,
			Percent:    d.Score,
			Width:      cw - 18,
			Color:      theme.ScoreColor(d.Score),
		}
		lines = append(lines, bar.View()+theme.Hint.Render(fmt.Sprintf("  %d test(s)", d.Sessions)))
	}
	return components.Panel("Score by difficulty", lines, cw)
}

func (s *StatsScreen) renderWeek(cw int) string {
	report := analytics.TimeAnalytics(s.svc.Bank, s.data.Progress, s.data.History, s.svc.Clock())
	var lines []string
	for _, day := range report.WeeklyProgress {
		label := day.Date
		if t, err := time.Parse(time.DateOnly, day.Date); err == nil {
			label = t.Format("Mon 02")
		}
		activity := theme.Hint.Render("-")
		if day.Tests > 0 {
			activity = fmt.Sprintf("%s %s",
				strings.Repeat("■", min(day.Tests, cw-30)),
				theme.Hint.Render(fmt.Sprintf("%d test(s), %d Qs, avg %d%%", day.Tests, day.Questions, day.Accuracy)))
		}
		lines = append(lines, fmt.Sprintf("%-7s %s", label, activity))
	}
	if n := len(report.SubjectTimeDistribution); n > 0 {
		lines = append(lines, "")
		parts := make([]string, 0, n)
		for _, st := range report.SubjectTimeDistribution {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.SubjectColor(st.Color)).
				Render(fmt.Sprintf("%s %d min", st.Name, st.Minutes)))
		}
		lines = append(lines, "Time: "+strings.Join(parts, theme.Hint.Render(" · ")))
	}
	if report.AverageSessionTime > 0 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("Average test: %d:%02d",
			report.AverageSessionTime/60, report.AverageSessionTime%60)))
	}
	return components.Panel("This week", lines, cw)
}

func insightColor(k analytics.InsightKind) color.Color {
	switch k {
	case analytics.InsightSuccess:
		return theme.Success
	case analytics.InsightWarning:
		return theme.Warning
	}
	return theme.Info
}
