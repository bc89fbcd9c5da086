// Package login collects the learner's student id and name.
package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/ui/components"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

const (
	fieldID = iota
	fieldName
	fieldSubmit
	fieldCount
)

type loginDoneMsg struct {
	Profile *progress.Profile
	Err     error
}

// LoginScreen is the sign-in form.
type LoginScreen struct {
	svc    *deps.Services
	next   func(*progress.Profile) screen.Screen
	id     components.TextInput
	name   components.TextInput
	submit components.Button
	focus  int
	busy   bool
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login form. On success the router is reset to next(profile).
func New(svc *deps.Services, next func(*progress.Profile) screen.Screen) *LoginScreen {
	s := &LoginScreen{
		svc:  svc,
		next: next,
		id:   components.NewTextInput("e.g. NP-2024-017", 40),
		name: components.NewTextInput("Your full name", 60),
	}
	s.name.Blur()
	s.submit = components.NewButton("Start learning")
	s.submit.Disabled = true
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.id.Init()
}

func (s *LoginScreen) Title() string {
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		return s.handleDone(msg)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if s.submit.Pressed(msg) {
			return s, s.login()
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if s.focus == fieldID {
				return s, s.setFocus(fieldName)
			}
			return s, s.login()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldID:
		s.id, cmd = s.id.Update(msg)
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	}
	s.submit.Disabled = s.id.Blank() || s.name.Blank()
	return s, cmd
}

func (s *LoginScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.id.Blur()
	s.name.Blur()
	s.submit.Focused = f == fieldSubmit
	s.submit.Disabled = s.id.Blank() || s.name.Blank()
	switch f {
	case fieldID:
		return s.id.Focus()
	case fieldName:
		return s.name.Focus()
	}
	return nil
}

func (s *LoginScreen) login() tea.Cmd {
	id := strings.TrimSpace(s.id.Value())
	name := strings.TrimSpace(s.name.Value())
	if id == "" || name == "" {
		s.errMsg = "Enter both your student ID and your name."
		if id == "" {
			return s.setFocus(fieldID)
		}
		return s.setFocus(fieldName)
	}
	s.busy = true
	s.errMsg = ""
	repo := s.svc.Repo
	return func() tea.Msg {
		p, err := repo.Login(context.Background(), id, name)
		return loginDoneMsg{Profile: p, Err: err}
	}
}

func (s *LoginScreen) handleDone(msg loginDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Profile == nil {
		if errors.Is(msg.Err, progress.ErrInvalidIdentity) {
			s.errMsg = "Enter both your student ID and your name."
		} else {
			s.errMsg = "Could not sign in: " + errString(msg.Err)
		}
		return s, nil
	}
	if msg.Err != nil {
		s.svc.Logger().Warn("login saved partially", "error", msg.Err)
	}
	next := s.next(msg.Profile)
	return s, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func (s *LoginScreen) View(width, height int) string {
	label := func(text string, focused bool) string {
		st := lipgloss.NewStyle().Foreground(theme.TextDim)
		if focused {
			st = st.Foreground(theme.Primary).Bold(true)
		}
		return st.Render(text)
	}

	lines := []string{
		theme.Title.Render("Welcome to " + layout.AppName),
		theme.Subtitle.Render("Sign in to track your practice"),
		"",
		label("Student ID", s.focus == fieldID),
		s.id.View(),
		"",
		label("Name", s.focus == fieldName),
		s.name.View(),
		"",
		s.submit.View(),
	}
	switch {
	case s.busy:
		lines = append(lines, "", theme.Hint.Render("Signing in..."))
	case s.errMsg != "":
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	form := theme.Card.Width(min(width-4, 56)).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
