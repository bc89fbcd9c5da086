package login

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/store"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func newTestLogin(t *testing.T) (*LoginScreen, *progress.Repo) {
	t.Helper()
	repo := progress.NewRepo(store.NewMemory(), "test", logger.Nop())
	svc := &deps.Services{Repo: repo}
	return New(svc, func(p *progress.Profile) screen.Screen {
		return &stubScreen{title: "home:" + p.Name}
	}), repo
}

func TestLoginRequiresBothFields(t *testing.T) {
	s, repo := newTestLogin(t)
	s.id.Model.SetValue("S-1")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // id -> name
	assert.Equal(t, fieldName, s.focus)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // submit with blank name
	assert.NotEmpty(t, s.errMsg)
	assert.False(t, s.busy)
	assert.Nil(t, repo.Profile(context.Background()))
}

func TestLoginSuccessResetsRouter(t *testing.T) {
	s, repo := newTestLogin(t)
	s.id.Model.SetValue("  S-1 ")
	s.name.Model.SetValue("Asha")
	s.setFocus(fieldSubmit)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, s.busy)

	done, ok := cmd().(loginDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)

	_, cmd = s.Update(done)
	require.NotNil(t, cmd)
	reset, ok := cmd().(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "home:Asha", reset.Screen.Title())

	p := repo.Profile(context.Background())
	require.NotNil(t, p)
	assert.Equal(t, "S-1", p.StudentID)
}

func TestLoginFocusCycles(t *testing.T) {
	s, _ := newTestLogin(t)
	for _, want := range []int{fieldName, fieldSubmit, fieldID} {
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
		assert.Equal(t, want, s.focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, fieldSubmit, s.focus)
	assert.True(t, s.submit.Focused)
	assert.True(t, s.submit.Disabled, "both fields are still blank")
}

func TestLoginView(t *testing.T) {
	s, _ := newTestLogin(t)
	s.errMsg = "Enter both your student ID and your name."
	view := s.View(100, 30)
	assert.Contains(t, view, "Student ID")
	assert.Contains(t, view, "Enter both")
}
