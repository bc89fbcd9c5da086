// Package screentest builds the services screens need for their tests.
package screentest

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/session"
	"github.com/kasambhusal/sajha-gyan/internal/store"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
)

// Now is the fixed clock used by Services.
var Now = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

// Bank returns a small catalog. Every multiple-choice question has its
// correct answer at index 1.
//
//	mathematics/algebra   a1 a2 a3 (mcq)
//	mathematics/essays    w1 (written)
//	science/physics       p1 p2 (mcq)
func Bank(t *testing.T) *questionbank.Bank {
	t.Helper()
	mcq := func(id string) questionbank.Question {
		return questionbank.Question{
			ID:            id,
			Type:          questionbank.TypeMCQ,
			Question:      "Question " + id + "?",
			Options:       []string{"wrong", "right", "other"},
			CorrectAnswer: 1,
			Explanation:   "Because " + id + ".",
		}
	}
	b, err := questionbank.New([]questionbank.Subject{
		{
			ID: "mathematics", Title: "Mathematics", Color: "blue",
			Subtopics: []questionbank.Subtopic{
				{ID: "algebra", Title: "Algebra", Difficulty: questionbank.DifficultyEasy,
					Questions: []questionbank.Question{mcq("a1"), mcq("a2"), mcq("a3")}},
				{ID: "essays", Title: "Essays", Difficulty: questionbank.DifficultyHard,
					Questions: []questionbank.Question{{
						ID: "w1", Type: questionbank.TypeWritten,
						Question: "Why do we factor?", AnswerGuide: "To find roots.",
					}}},
			},
		},
		{
			ID: "science", Title: "Science", Color: "green",
			Subtopics: []questionbank.Subtopic{
				{ID: "physics", Title: "Physics", Difficulty: questionbank.DifficultyMedium,
					Questions: []questionbank.Question{mcq("p1"), mcq("p2")}},
			},
		},
	})
	require.NoError(t, err)
	return b
}

// Services wires an in-memory store and the Bank catalog. When login is
// true the learner S-1 "Asha" is signed in.
func Services(t *testing.T, login bool) *deps.Services {
	t.Helper()
	clock := func() time.Time { return Now }
	repo := progress.NewRepo(store.NewMemory(), "test", logger.Nop(), progress.WithClock(clock))
	if login {
		_, err := repo.Login(context.Background(), "S-1", "Asha")
		require.NoError(t, err)
	}
	planner := session.NewPlanner(Bank(t), 0, rand.New(rand.NewPCG(1, 2)))
	sessions := session.NewService(repo, planner, logger.Nop())
	sessions.SetClock(clock)
	return &deps.Services{
		Repo:     repo,
		Bank:     planner.Bank(),
		Sessions: sessions,
		Plans:    studyplan.NewEngine(repo, logger.Nop()),
		Log:      logger.Nop(),
		Now:      clock,
	}
}

// Record stores attempts for one subtopic, one per outcome, with question
// ids "<subtopic>-<n>".
func Record(t *testing.T, svc *deps.Services, subjectID, subtopicID string, outcomes ...bool) {
	t.Helper()
	for i, correct := range outcomes {
		_, err := svc.Repo.RecordAttempt(context.Background(), progress.Attempt{
			SubjectID:  subjectID,
			SubtopicID: subtopicID,
			QuestionID: subtopicID + "-" + string(rune('0'+i)),
			Correct:    correct,
			TimeTaken:  2000,
		})
		require.NoError(t, err)
	}
}

// Stub is a placeholder screen for navigation targets.
type Stub struct {
	Name string
}

func (s *Stub) Init() tea.Cmd                           { return nil }
func (s *Stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *Stub) View(int, int) string                    { return s.Name }
func (s *Stub) Title() string                           { return s.Name }

// Key returns a key press for a printable key.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Drain runs cmd and returns its message, or nil for a nil command.
func Drain(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
