package home

import (
	"context"
	"strings"
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

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "signed out" }
func (s *stubScreen) Title() string                           { return "Welcome" }

func signedIn(t *testing.T) *deps.Services {
	t.Helper()
	repo := progress.NewRepo(store.NewMemory(), "test", logger.Nop())
	_, err := repo.Login(context.Background(), "S-1", "Asha")
	require.NoError(t, err)
	return &deps.Services{Repo: repo}
}

func record(t *testing.T, repo *progress.Repo, subtopic string, correct ...bool) {
	t.Helper()
	for i, c := range correct {
		_, err := repo.RecordAttempt(context.Background(), progress.Attempt{
			SubjectID:  "mathematics",
			SubtopicID: subtopic,
			QuestionID: subtopic + string(rune('a'+i)),
			Correct:    c,
			TimeTaken:  1000,
		})
		require.NoError(t, err)
	}
}

func TestDashboardCountsWeakAreas(t *testing.T) {
	svc := signedIn(t)
	record(t, svc.Repo, "algebra", true, false, false)

	h := New(svc, func() screen.Screen { return &stubScreen{} })
	assert.Equal(t, "Asha", h.dash.Name)
	assert.Equal(t, 3, h.dash.Questions)
	assert.Equal(t, 33, h.dash.Accuracy)
	assert.Equal(t, 1, h.dash.WeakAreas)
	assert.Equal(t, MascotWorried, pickMascot(h.dash))
}

func TestResumeReloadsDashboard(t *testing.T) {
	svc := signedIn(t)
	h := New(svc, func() screen.Screen { return &stubScreen{} })
	assert.Zero(t, h.dash.Questions)

	record(t, svc.Repo, "geometry", true, true)
	h.Update(router.ResumedMsg{})
	assert.Equal(t, 2, h.dash.Questions)
	assert.Equal(t, 100, h.dash.Accuracy)
}

func TestSignOutClearsStoreAndResets(t *testing.T) {
	svc := signedIn(t)
	h := New(svc, func() screen.Screen { return &stubScreen{} })

	// Move to SIGN OUT.
	for range 4 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(signedOutMsg)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Nil(t, svc.Repo.Profile(context.Background()))

	_, cmd = h.Update(msg)
	require.NotNil(t, cmd)
	reset, ok := cmd().(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Welcome", reset.Screen.Title())
}

func TestMenuPushesScreens(t *testing.T) {
	svc := signedIn(t)
	h := New(svc, func() screen.Screen { return &stubScreen{} })

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Practice", push.Screen.Title())
}

func TestMascotVariants(t *testing.T) {
	assert.Equal(t, MascotIdle, pickMascot(dashboard{}))
	assert.Equal(t, MascotCheering, pickMascot(dashboard{HasLast: true, LastScore: 80}))
	assert.Equal(t, MascotIdle, pickMascot(dashboard{HasLast: true, LastScore: 79}))
	assert.Equal(t, MascotWorried, pickMascot(dashboard{HasLast: true, LastScore: 90, WeakAreas: 2}))
}

func TestViewRendersMenu(t *testing.T) {
	h := New(signedIn(t), func() screen.Screen { return &stubScreen{} })
	for _, size := range [][2]int{{120, 40}, {80, 18}} {
		out := h.View(size[0], size[1])
		assert.True(t, strings.Contains(out, "PRACTICE"), "size %v", size)
		assert.True(t, strings.Contains(out, "Asha"), "size %v", size)
	}
}
