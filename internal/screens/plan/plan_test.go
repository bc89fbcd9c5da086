package plan

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/screens/screentest"
)

func loaded(t *testing.T, svc *deps.Services) *PlanScreen {
	t.Helper()
	s := New(svc)
	msg, ok := screentest.Drain(s.Init()).(planLoadedMsg)
	require.True(t, ok)
	s.Update(msg)
	return s
}

func TestPlanRefreshesAndCaches(t *testing.T) {
	svc := screentest.Services(t, true)
	screentest.Record(t, svc, "mathematics", "algebra", true, false, false)
	screentest.Record(t, svc, "science", "physics", true, true, true, true, true)

	s := loaded(t, svc)
	require.NotNil(t, s.plan)
	assert.False(t, s.stale)
	require.Len(t, s.plan.WeakAreas, 1)
	assert.Equal(t, "algebra", s.plan.WeakAreas[0].SubtopicID)
	require.Len(t, s.plan.Strengths, 1)
	assert.Equal(t, "physics", s.plan.Strengths[0].SubtopicID)

	cached := svc.Repo.StudyPlan(context.Background())
	assert.Equal(t, s.plan.Recommendations, cached.Recommendations)
	assert.Equal(t, "Focus on algebra - current accuracy: 33%", cached.Recommendations[0].Message)

	view := s.View(100, 30)
	assert.Contains(t, view, "Algebra")
	assert.Contains(t, view, "Weak Areas (1)")
}

func TestTabsCycle(t *testing.T) {
	s := loaded(t, screentest.Services(t, true))
	for _, want := range []Tab{TabStrengths, TabRecommendations, TabGoals, TabWeak} {
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
		assert.Equal(t, want, s.tab)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, TabGoals, s.tab)
	assert.Contains(t, s.View(100, 30), "No goals set.")
}

func TestEnterPracticesWeakArea(t *testing.T) {
	svc := screentest.Services(t, true)
	screentest.Record(t, svc, "mathematics", "algebra", false, false, false)
	s := loaded(t, svc)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := screentest.Drain(cmd).(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Practice", push.Screen.Title())

	// Strengths are not practice targets.
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestResumeReloads(t *testing.T) {
	svc := screentest.Services(t, true)
	s := loaded(t, svc)
	assert.Empty(t, s.plan.WeakAreas)

	screentest.Record(t, svc, "science", "physics", false, false, false)
	_, cmd := s.Update(router.ResumedMsg{})
	s.Update(screentest.Drain(cmd))
	assert.Len(t, s.plan.WeakAreas, 1)
}
