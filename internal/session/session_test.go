package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
	"github.com/kasambhusal/sajha-gyan/internal/store"
)

const poolSize = 15

// testBank has one subtopic with poolSize multiple-choice questions whose
// correct option is always index 1, plus a written subtopic.
func testBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	var mcqs []questionbank.Question
	for i := 0; i < poolSize; i++ {
		mcqs = append(mcqs, questionbank.Question{
			ID:            fmt.Sprintf("q%02d", i),
			Type:          questionbank.TypeMCQ,
			Question:      fmt.Sprintf("Question %d?", i),
			Options:       []string{"no", "yes", "maybe"},
			CorrectAnswer: 1,
		})
	}
	b, err := questionbank.New([]questionbank.Subject{{
		ID:    "math",
		Title: "Mathematics",
		Subtopics: []questionbank.Subtopic{
			{ID: "algebra", Title: "Algebra", Difficulty: questionbank.DifficultyMedium, Questions: mcqs},
			{ID: "proofs", Title: "Proofs", Questions: []questionbank.Question{
				{ID: "w1", Type: questionbank.TypeWritten, Question: "Prove it.", AnswerGuide: "By induction.", Difficulty: questionbank.DifficultyHard},
			}},
		},
	}})
	require.NoError(t, err)
	return b
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func ledgerWith(attempted ...string) *progress.Progress {
	now := time.Now()
	p := progress.NewProgress("S-1", now)
	for _, id := range attempted {
		p.Record("math", "algebra", id, false, 0, now)
	}
	return p
}

func TestBuildPlanDrawsDistinctUnattempted(t *testing.T) {
	planner := NewPlanner(testBank(t), 0, seeded(1))

	plan, err := planner.BuildPlan(ledgerWith(), "math", "algebra")
	require.NoError(t, err)
	assert.False(t, plan.Exhausted)
	require.Len(t, plan.Questions, DefaultMaxQuestions)

	seen := map[string]bool{}
	for _, q := range plan.Questions {
		assert.False(t, seen[q.ID], "duplicate %s", q.ID)
		seen[q.ID] = true
	}
}

func TestBuildPlanExcludesAttempted(t *testing.T) {
	planner := NewPlanner(testBank(t), 0, seeded(2))

	var attempted []string
	for i := 0; i < 12; i++ {
		attempted = append(attempted, fmt.Sprintf("q%02d", i))
	}
	// Repeat attempts still count once.
	attempted = append(attempted, "q00", "q01")

	plan, err := planner.BuildPlan(ledgerWith(attempted...), "math", "algebra")
	require.NoError(t, err)
	require.Len(t, plan.Questions, 3)
	for _, q := range plan.Questions {
		assert.Contains(t, []string{"q12", "q13", "q14"}, q.ID)
	}

	n, err := planner.Available(ledgerWith(attempted...), "math", "algebra")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestBuildPlanExhausted(t *testing.T) {
	planner := NewPlanner(testBank(t), 0, nil)
	var all []string
	for i := 0; i < poolSize; i++ {
		all = append(all, fmt.Sprintf("q%02d", i))
	}

	plan, err := planner.BuildPlan(ledgerWith(all...), "math", "algebra")
	require.NoError(t, err)
	assert.True(t, plan.Exhausted)
	assert.Empty(t, plan.Questions)
}

func TestBuildPlanUnknownReference(t *testing.T) {
	planner := NewPlanner(testBank(t), 0, nil)

	_, err := planner.BuildPlan(ledgerWith(), "history", "algebra")
	assert.ErrorIs(t, err, ErrReferenceNotFound)
	assert.ErrorIs(t, err, questionbank.ErrNotFound)

	_, err = planner.BuildPlan(ledgerWith(), "math", "calculus")
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestBuildPlanRespectsMaxQuestions(t *testing.T) {
	planner := NewPlanner(testBank(t), 4, seeded(3))
	plan, err := planner.BuildPlan(ledgerWith(), "math", "algebra")
	require.NoError(t, err)
	assert.Len(t, plan.Questions, 4)
}

func TestSelectionIsUniform(t *testing.T) {
	planner := NewPlanner(testBank(t), 0, seeded(42))
	const trials = 30000

	first := map[string]int{}
	included := map[string]int{}
	for i := 0; i < trials; i++ {
		plan, err := planner.BuildPlan(ledgerWith(), "math", "algebra")
		require.NoError(t, err)
		first[plan.Questions[0].ID]++
		for _, q := range plan.Questions {
			included[q.ID]++
		}
	}

	require.Len(t, first, poolSize, "every question must be able to lead")
	wantFirst := float64(trials) / poolSize
	wantIncluded := float64(trials) * DefaultMaxQuestions / poolSize
	for id, n := range first {
		assert.InEpsilon(t, wantFirst, float64(n), 0.15, "first position %s", id)
	}
	for id, n := range included {
		assert.InEpsilon(t, wantIncluded, float64(n), 0.05, "inclusion %s", id)
	}
}

func TestGrade(t *testing.T) {
	mcq := questionbank.Question{Type: questionbank.TypeMCQ, Options: []string{"a", "b", "c"}, CorrectAnswer: 2}
	written := questionbank.Question{Type: questionbank.TypeWritten, AnswerGuide: "guide"}

	tests := []struct {
		name string
		q    questionbank.Question
		ans  Answer
		want bool
	}{
		{"mcq correct", mcq, Choose(2), true},
		{"mcq wrong", mcq, Choose(0), false},
		{"mcq nothing selected", mcq, Write("c"), false},
		{"written eleven chars", written, Write("abcdefghijk"), true},
		{"written ten chars", written, Write("abcdefghij"), false},
		{"written padded short", written, Write("   short    "), false},
		{"written empty", written, Write(""), false},
		{"unknown type", questionbank.Question{Type: "essay"}, Write("long enough answer"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Grade(tt.q, tt.ans))
		})
	}
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{3, 8, 38}, // 37.5 rounds up
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScorePercent(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(t *testing.T, login bool) (*Service, *progress.Repo, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	repo := progress.NewRepo(store.NewMemory(), "sajhagyan", logger.Nop(), progress.WithClock(clock.now))
	if login {
		_, err := repo.Login(context.Background(), "S-1", "Asha")
		require.NoError(t, err)
	}
	svc := NewService(repo, NewPlanner(testBank(t), 3, seeded(7)), logger.Nop())
	svc.SetClock(clock.now)
	return svc, repo, clock
}

func TestServiceFullSession(t *testing.T) {
	svc, repo, clock := newTestService(t, true)
	ctx := context.Background()

	state, err := svc.Start(ctx, "math", "algebra")
	require.NoError(t, err)
	require.Equal(t, 3, state.Total())

	answers := []int{1, 0, 1}
	for i, choice := range answers {
		clock.advance(2 * time.Second)
		correct, err := svc.Submit(ctx, state, Choose(choice))
		require.NoError(t, err)
		assert.Equal(t, choice == 1, correct)
		assert.Equal(t, PhaseFeedback, state.Phase)

		more := svc.Next(state)
		assert.Equal(t, i < len(answers)-1, more)
	}

	summary, err := svc.Complete(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Questions)
	assert.Equal(t, 2, summary.Correct)
	assert.Equal(t, 67, summary.Score)
	assert.Equal(t, int64(6000), summary.TotalTime)
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, PhaseSummary, state.Phase)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, "yes", summary.Results[0].UserAnswer)
	assert.Equal(t, "yes", summary.Results[0].CorrectAnswer)
	assert.Equal(t, "no", summary.Results[1].UserAnswer)
	assert.Equal(t, int64(2000), summary.Results[1].TimeTaken)
	assert.Equal(t, "medium", summary.Results[0].Difficulty, "falls back to subtopic difficulty")

	h := repo.History(ctx)
	require.Len(t, h.Tests, 1)
	assert.Equal(t, summary.ID, h.Tests[0].ID)

	stat, ok := repo.Progress(ctx).Stat("math", "algebra")
	require.True(t, ok)
	assert.Equal(t, 3, stat.Attempted)
	assert.Equal(t, 2, stat.Correct)

	p := repo.Profile(ctx)
	assert.Equal(t, 3, p.TotalQuestions)
	assert.Equal(t, 2, p.CorrectAnswers)
	assert.Equal(t, 1, p.TotalTests)

	// Next session draws only unattempted questions.
	next, err := svc.Start(ctx, "math", "algebra")
	require.NoError(t, err)
	done := map[string]bool{}
	for _, r := range summary.Results {
		done[r.QuestionID] = true
	}
	for _, q := range next.Plan.Questions {
		assert.False(t, done[q.ID], "%s was already attempted", q.ID)
	}
}

func TestServiceWrittenQuestion(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	ctx := context.Background()

	state, err := svc.Start(ctx, "math", "proofs")
	require.NoError(t, err)
	correct, err := svc.Submit(ctx, state, Write("Assume n and show n+1 holds."))
	require.NoError(t, err)
	assert.True(t, correct)
	assert.False(t, svc.Next(state))

	summary, err := svc.Complete(ctx, state)
	require.NoError(t, err)
	r := summary.Results[0]
	assert.Equal(t, "written", r.Type)
	assert.Equal(t, "By induction.", r.CorrectAnswer)
	assert.Equal(t, "By induction.", r.Explanation)
	assert.Equal(t, "hard", r.Difficulty)
	assert.Equal(t, 100, summary.Score)

	_, err = svc.Start(ctx, "math", "proofs")
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestServiceStartRequiresLogin(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	_, err := svc.Start(context.Background(), "math", "algebra")
	assert.ErrorIs(t, err, progress.ErrNotLoggedIn)
}

func TestServiceStartUnknownReference(t *testing.T) {
	svc, repo, _ := newTestService(t, true)
	ctx := context.Background()
	_, err := svc.Start(ctx, "math", "calculus")
	assert.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Empty(t, repo.Progress(ctx).Subjects, "no ledger entry for unknown topics")
}

func TestAbandonedSessionKeepsSubmittedAnswers(t *testing.T) {
	svc, repo, _ := newTestService(t, true)
	ctx := context.Background()

	state, err := svc.Start(ctx, "math", "algebra")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, state, Choose(1))
	require.NoError(t, err)
	svc.Next(state)
	_, err = svc.Submit(ctx, state, Choose(0))
	require.NoError(t, err)
	// Walk away without completing.

	stat, _ := repo.Progress(ctx).Stat("math", "algebra")
	assert.Equal(t, 2, stat.Attempted)
	assert.Empty(t, repo.History(ctx).Tests)
}

func TestSubmitOutsideActivePhase(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	ctx := context.Background()

	state, err := svc.Start(ctx, "math", "algebra")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, state, Choose(1))
	require.NoError(t, err)

	_, err = svc.Submit(ctx, state, Choose(1))
	assert.ErrorIs(t, err, ErrNotAnswerable)
	assert.Equal(t, 1, state.Answered())
}

func TestCompleteWithoutAnswers(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	ctx := context.Background()
	state, err := svc.Start(ctx, "math", "algebra")
	require.NoError(t, err)

	_, err = svc.Complete(ctx, state)
	assert.True(t, errors.Is(err, ErrNothingAnswered))
}

func TestCompleteTwiceLogsOnce(t *testing.T) {
	svc, repo, _ := newTestService(t, true)
	ctx := context.Background()

	state, err := svc.Start(ctx, "math", "algebra")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, state, Choose(1))
	require.NoError(t, err)

	first, err := svc.Complete(ctx, state)
	require.NoError(t, err)

	again, err := svc.Complete(ctx, state)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	require.NotNil(t, again)
	assert.Equal(t, first.ID, again.ID)

	assert.Len(t, repo.History(ctx).Tests, 1)
	assert.Equal(t, 1, repo.Profile(ctx).TotalTests)
}
