// Package subjects lists the catalog for picking a practice subtopic.
package subjects

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	sessionscreen "github.com/kasambhusal/sajha-gyan/internal/screens/session"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

type rowKind int

const (
	rowSubjectHeader rowKind = iota
	rowSubtopic
)

// State is the learner's standing in one subtopic.
type State int

const (
	StateNew State = iota
	StatePracticing
	StateWeak
	StateStrong
	StateDone // every question attempted
)

// Label returns the column text for the state.
func (s State) Label() string {
	switch s {
	case StatePracticing:
		return "practicing"
	case StateWeak:
		return "weak"
	case StateStrong:
		return "strong"
	case StateDone:
		return "done"
	default:
		return "new"
	}
}

// Icon returns the glyph shown before the subtopic title.
func (s State) Icon() string {
	switch s {
	case StatePracticing:
		return "◐"
	case StateWeak:
		return "!"
	case StateStrong:
		return "★"
	case StateDone:
		return "✓"
	default:
		return "○"
	}
}

type row struct {
	kind      rowKind
	subject   questionbank.Subject
	subtopic  questionbank.Subtopic
	state     State
	available int
	accuracy  int // percent, meaningful when attempted > 0
	attempted int
}

// SubjectsScreen lists subjects with their subtopics.
type SubjectsScreen struct {
	svc          *deps.Services
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*SubjectsScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectsScreen)(nil)

// New creates a new SubjectsScreen.
func New(svc *deps.Services) *SubjectsScreen {
	s := &SubjectsScreen{svc: svc}
	s.reload()
	s.cursor = -1
	s.moveCursor(1)
	return s
}

// reload rebuilds the rows from the catalog and the current ledger.
func (s *SubjectsScreen) reload() {
	prog := s.svc.Repo.Progress(context.Background())
	planner := s.svc.Sessions.Planner()

	var rows []row
	for _, subj := range s.svc.Bank.Subjects() {
		rows = append(rows, row{kind: rowSubjectHeader, subject: subj})
		for _, st := range subj.Subtopics {
			r := row{kind: rowSubtopic, subject: subj, subtopic: st}
			r.available, _ = planner.Available(prog, subj.ID, st.ID)
			if stat, ok := prog.Stat(subj.ID, st.ID); ok && stat.Attempted > 0 {
				r.attempted = stat.Attempted
				r.accuracy = studyplan.Percent(stat.Accuracy())
			}
			r.state = stateOf(prog, subj.ID, st.ID, r.available)
			rows = append(rows, r)
		}
	}
	s.rows = rows
}

func stateOf(prog *progress.Progress, subjectID, subtopicID string, available int) State {
	if available == 0 {
		return StateDone
	}
	stat, ok := prog.Stat(subjectID, subtopicID)
	if !ok || stat.Attempted == 0 {
		return StateNew
	}
	switch weak, strong := studyplan.Classify(stat); {
	case weak:
		return StateWeak
	case strong:
		return StateStrong
	}
	return StatePracticing
}

func (s *SubjectsScreen) Init() tea.Cmd {
	return nil
}

func (s *SubjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		s.reload()
		if s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowSubtopic {
			s.cursor = -1
			s.moveCursor(1)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextSubject()
		case "enter":
			return s, s.selectSubtopic()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SubjectsScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("The question catalog is empty."))
	}

	s.adjustScroll(height)

	var lines []string
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}
		switch r.kind {
		case rowSubjectHeader:
			lines = append(lines, renderSubjectHeader(r.subject, width))
		case rowSubtopic:
			lines = append(lines, renderSubtopicRow(r, i == s.cursor, width))
		}
		visible++
	}
	return strings.Join(lines, "\n")
}

func (s *SubjectsScreen) Title() string {
	return "Practice"
}

// KeyHints returns the key binding hints for the footer.
func (s *SubjectsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Subject"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping subject headers.
func (s *SubjectsScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowSubtopic {
			s.cursor = next
			return
		}
		next += delta
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// nextSubject jumps to the first subtopic of the next subject, wrapping
// around to the first subject.
func (s *SubjectsScreen) nextSubject() {
	if len(s.rows) == 0 {
		return
	}
	current := s.rows[s.cursor].subject.ID
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowSubtopic && s.rows[i].subject.ID != current {
			s.cursor = i
			return
		}
	}
	s.cursor = -1
	s.moveCursor(1)
}

// adjustScroll keeps the cursor and its subject header in view.
func (s *SubjectsScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowSubjectHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// selectSubtopic opens a practice session for the highlighted subtopic.
func (s *SubjectsScreen) selectSubtopic() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	r := s.rows[s.cursor]
	if r.kind != rowSubtopic || r.state == StateDone {
		return nil
	}
	practice := sessionscreen.New(s.svc, r.subject.ID, r.subtopic.ID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: practice}
	}
}

func renderSubjectHeader(subj questionbank.Subject, width int) string {
	name := strings.ToUpper(subj.Title)
	if subj.Icon != "" {
		name = subj.Icon + " " + name
	}
	return lipgloss.NewStyle().
		Foreground(theme.SubjectColor(subj.Color)).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(name)
}

// renderSubtopicRow renders one subtopic with its availability and accuracy.
func renderSubtopicRow(r row, selected bool, width int) string {
	const (
		indent     = 4
		iconWidth  = 2
		countWidth = 9
		accWidth   = 6
		labelWidth = 10
		spacing    = 8
	)
	nameWidth := max(width-indent-iconWidth-countWidth-accWidth-labelWidth-spacing, 10)
	name := layout.Truncate(r.subtopic.Title, nameWidth)

	count := fmt.Sprintf("%d/%d", r.available, len(r.subtopic.Questions))
	acc := "  -"
	if r.attempted > 0 {
		acc = fmt.Sprintf("%d%%", r.accuracy)
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Secondary)
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case r.state == StateDone:
		nameStyle = dimStyle
		labelStyle = dimStyle
	case r.state == StateWeak:
		labelStyle = lipgloss.NewStyle().Foreground(theme.Warning)
	case r.state == StateStrong:
		labelStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s  %s  %s",
		cursor,
		r.state.Icon(),
		nameStyle.Render(padRight(name, nameWidth)),
		dimStyle.Render(fmt.Sprintf("%*s", countWidth, count)),
		lipgloss.NewStyle().Foreground(theme.ScoreColor(r.accuracy)).Render(fmt.Sprintf("%*s", accWidth, acc)),
		labelStyle.Render(fmt.Sprintf("%*s", labelWidth, r.state.Label())),
	)
}

// padRight pads s to n display cells.
func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
