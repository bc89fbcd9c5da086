package studyplan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/store"
)

type row struct {
	subject, subtopic  string
	attempted, correct int
}

// ledger builds a Progress with the given (attempted, correct) per subtopic,
// in argument order.
func ledger(t *testing.T, rows ...row) *progress.Progress {
	t.Helper()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	p := progress.NewProgress("S-1", now)
	for _, r := range rows {
		for i := 0; i < r.attempted; i++ {
			p.Record(r.subject, r.subtopic, "q", i < r.correct, 1000, now)
		}
	}
	return p
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		attempted  int
		correct    int
		wantWeak   bool
		wantStrong bool
	}{
		{"weak at three attempts", 3, 1, true, false},
		{"too few attempts for weak", 2, 0, false, false},
		{"strength at exactly 0.8", 5, 4, false, true},
		{"too few attempts for strength", 4, 4, false, false},
		{"0.6 is not weak", 5, 3, false, false},
		{"just under 0.6 is weak", 10, 5, true, false},
		{"just under 0.8 is neutral", 10, 7, false, false},
		{"never attempted", 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ledger(t, row{"s", "t", tt.attempted, tt.correct})
			stat, _ := p.Stat("s", "t")
			weak, strong := Classify(stat)
			assert.Equal(t, tt.wantWeak, weak, "weak")
			assert.Equal(t, tt.wantStrong, strong, "strong")
		})
	}
}

func TestDeriveKeepsLedgerOrder(t *testing.T) {
	p := ledger(t,
		row{"science", "physics", 4, 0},
		row{"math", "geometry", 6, 6},
		row{"math", "algebra", 3, 1},
		row{"math", "fractions", 2, 2},
		row{"science", "chemistry", 5, 5},
	)

	plan := Derive(p)

	require.Len(t, plan.WeakAreas, 2)
	assert.Equal(t, "physics", plan.WeakAreas[0].SubtopicID)
	assert.Equal(t, "algebra", plan.WeakAreas[1].SubtopicID)

	require.Len(t, plan.Strengths, 2)
	assert.Equal(t, "geometry", plan.Strengths[0].SubtopicID)
	assert.Equal(t, "chemistry", plan.Strengths[1].SubtopicID)

	require.Len(t, plan.Recommendations, 2)
	assert.Equal(t, progress.Recommendation{
		Type:     "improvement",
		Subject:  "science",
		Subtopic: "physics",
		Message:  "Focus on physics - current accuracy: 0%",
		Priority: "high",
	}, plan.Recommendations[0])
	assert.Equal(t, "Focus on algebra - current accuracy: 33%", plan.Recommendations[1].Message)
}

func TestDeriveIsPure(t *testing.T) {
	p := ledger(t, row{"s", "a", 3, 1}, row{"s", "b", 5, 5})
	first := Derive(p)
	second := Derive(p)
	assert.Equal(t, first, second)

	stat, _ := p.Stat("s", "a")
	assert.Equal(t, 3, stat.Attempted, "ledger untouched")
}

func TestDeriveEmpty(t *testing.T) {
	plan := Derive(nil)
	assert.NotNil(t, plan.WeakAreas)
	assert.Empty(t, plan.WeakAreas)
	assert.Empty(t, Derive(progress.NewProgress("x", time.Now())).Recommendations)
}

func TestPercentRoundsHalfUp(t *testing.T) {
	tests := []struct {
		ratio float64
		want  int
	}{
		{0, 0},
		{1.0 / 3, 33},
		{2.0 / 3, 67},
		{0.125, 13},
		{0.5, 50},
		{1, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.ratio), "Percent(%v)", tt.ratio)
	}
}

func TestEngineRefreshWritesThrough(t *testing.T) {
	ctx := context.Background()
	repo := progress.NewRepo(store.NewMemory(), "sajhagyan", logger.Nop())
	_, err := repo.Login(ctx, "S-1", "Asha")
	require.NoError(t, err)

	// Carry a goal the learner set; Refresh must not drop it.
	doc := repo.StudyPlan(ctx)
	doc.NextGoals = []string{"finish physics"}
	require.NoError(t, repo.SaveStudyPlan(ctx, doc))

	for i, correct := range []bool{true, false, false} {
		_, err := repo.RecordAttempt(ctx, progress.Attempt{
			SubjectID: "subjectA", SubtopicID: "topicX",
			QuestionID: string(rune('a' + i)), Correct: correct, TimeTaken: 500,
		})
		require.NoError(t, err)
	}

	stat, ok := repo.Progress(ctx).Stat("subjectA", "topicX")
	require.True(t, ok)
	assert.Equal(t, 3, stat.Attempted)
	assert.Equal(t, 1, stat.Correct)
	assert.InDelta(t, 0.333, stat.Accuracy(), 0.001)

	e := NewEngine(repo, logger.Nop())
	plan, err := e.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, plan.WeakAreas, 1)
	assert.Equal(t, "topicX", plan.WeakAreas[0].SubtopicID)
	assert.InDelta(t, 0.333, plan.WeakAreas[0].Accuracy, 0.001)
	assert.Equal(t, 3, plan.WeakAreas[0].Attempted)
	require.NotNil(t, plan.LastUpdated)

	stored := repo.StudyPlan(ctx)
	assert.Equal(t, plan.WeakAreas, stored.WeakAreas)
	assert.Equal(t, plan.Recommendations, stored.Recommendations)
	assert.Equal(t, []string{"finish physics"}, stored.NextGoals)
}

type failingPlanRepo struct {
	prog *progress.Progress
}

func (f failingPlanRepo) Progress(context.Context) *progress.Progress { return f.prog }
func (f failingPlanRepo) StudyPlan(context.Context) *progress.StudyPlan {
	return &progress.StudyPlan{}
}
func (f failingPlanRepo) SaveStudyPlan(context.Context, *progress.StudyPlan) error {
	return store.ErrUnavailable
}

func TestEngineRefreshReturnsPlanOnWriteFailure(t *testing.T) {
	e := NewEngine(failingPlanRepo{prog: ledger(t, row{"s", "t", 3, 0})}, nil)
	plan, err := e.Refresh(context.Background())
	assert.ErrorIs(t, err, store.ErrUnavailable)
	require.NotNil(t, plan)
	assert.Len(t, plan.WeakAreas, 1)
	assert.Equal(t, "S-1", plan.StudentID)
}
