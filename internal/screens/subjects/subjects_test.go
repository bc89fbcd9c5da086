package subjects

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/screens/screentest"
	sessionscreen "github.com/kasambhusal/sajha-gyan/internal/screens/session"
)

// Rows for screentest.Bank:
//
//	0 MATHEMATICS  1 algebra  2 essays  3 SCIENCE  4 physics
const (
	rowAlgebra = 1
	rowEssays  = 2
	rowPhysics = 4
)

func finishEssays(t *testing.T, svc *deps.Services) {
	t.Helper()
	_, err := svc.Repo.RecordAttempt(context.Background(), progress.Attempt{
		SubjectID: "mathematics", SubtopicID: "essays", QuestionID: "w1", Correct: true, TimeTaken: 1000,
	})
	require.NoError(t, err)
}

func TestRowStates(t *testing.T) {
	svc := screentest.Services(t, true)
	screentest.Record(t, svc, "mathematics", "algebra", false, false, true)
	screentest.Record(t, svc, "science", "physics", true, true, true, true, true)
	finishEssays(t, svc)

	s := New(svc)
	require.Len(t, s.rows, 5)
	assert.Equal(t, rowSubjectHeader, s.rows[0].kind)
	assert.Equal(t, rowSubjectHeader, s.rows[3].kind)

	algebra := s.rows[rowAlgebra]
	assert.Equal(t, StateWeak, algebra.state)
	assert.Equal(t, 3, algebra.available, "recorded ids are not catalog questions")
	assert.Equal(t, 33, algebra.accuracy)

	assert.Equal(t, StateDone, s.rows[rowEssays].state)
	assert.Equal(t, 0, s.rows[rowEssays].available)
	assert.Equal(t, StateStrong, s.rows[rowPhysics].state)

	view := s.View(100, 30)
	assert.Contains(t, view, "MATHEMATICS")
	assert.Contains(t, view, "Algebra")
	assert.Contains(t, view, "3/3")
	assert.Contains(t, view, "weak")
	assert.Contains(t, view, "done")
}

func TestNewAndPracticingStates(t *testing.T) {
	svc := screentest.Services(t, true)
	screentest.Record(t, svc, "mathematics", "algebra", true, false)

	s := New(svc)
	assert.Equal(t, StatePracticing, s.rows[rowAlgebra].state, "two attempts classify as neither")
	assert.Equal(t, StateNew, s.rows[rowPhysics].state)
	assert.Equal(t, "new", StateNew.Label())
	assert.Equal(t, "○", StateNew.Icon())
}

func TestCursorSkipsHeaders(t *testing.T) {
	s := New(screentest.Services(t, true))
	assert.Equal(t, rowAlgebra, s.cursor)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, rowEssays, s.cursor)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, rowPhysics, s.cursor)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, rowPhysics, s.cursor, "stays on the last row")
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, rowEssays, s.cursor)
}

func TestTabJumpsToNextSubject(t *testing.T) {
	s := New(screentest.Services(t, true))
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, rowPhysics, s.cursor)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, rowAlgebra, s.cursor, "wraps to the first subject")
}

func TestEnterStartsPractice(t *testing.T) {
	s := New(screentest.Services(t, true))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := screentest.Drain(cmd).(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*sessionscreen.SessionScreen)
	assert.True(t, ok)
	assert.Equal(t, "Practice", push.Screen.Title())
}

func TestDoneSubtopicCannotBeOpened(t *testing.T) {
	svc := screentest.Services(t, true)
	finishEssays(t, svc)
	s := New(svc)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, rowEssays, s.cursor)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestResumeReloadsLedger(t *testing.T) {
	svc := screentest.Services(t, true)
	s := New(svc)
	require.Equal(t, StateNew, s.rows[rowEssays].state)

	finishEssays(t, svc)
	s.Update(router.ResumedMsg{})
	assert.Equal(t, StateDone, s.rows[rowEssays].state)
	assert.Equal(t, rowAlgebra, s.cursor)
}

func TestQuitPops(t *testing.T) {
	s := New(screentest.Services(t, true))
	_, cmd := s.Update(screentest.Key('q'))
	assert.Equal(t, router.PopScreenMsg{}, screentest.Drain(cmd))
	assert.Equal(t, "Practice", s.Title())
}
