// Package studyplan classifies ledger subtopics into weak areas and
// strengths and turns weak areas into recommendations.
package studyplan

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
)

// Classification thresholds. Both gates must hold.
const (
	WeakAccuracy      = 0.60
	WeakMinAttempts   = 3
	StrongAccuracy    = 0.80
	StrongMinAttempts = 5
)

const (
	recommendationType     = "improvement"
	recommendationPriority = "high"
)

// Plan is the derived part of a study plan.
type Plan struct {
	WeakAreas       []progress.Area
	Strengths       []progress.Area
	Recommendations []progress.Recommendation
}

// Classify reports whether a subtopic is weak, strong or neither.
func Classify(stat progress.SubtopicStat) (weak, strong bool) {
	if stat.Attempted == 0 {
		return false, false
	}
	acc := stat.Accuracy()
	switch {
	case acc < WeakAccuracy && stat.Attempted >= WeakMinAttempts:
		return true, false
	case acc >= StrongAccuracy && stat.Attempted >= StrongMinAttempts:
		return false, true
	}
	return false, false
}

// Derive classifies every attempted subtopic in ledger order. It reads
// nothing but p and has no side effects.
func Derive(p *progress.Progress) Plan {
	plan := Plan{
		WeakAreas:       []progress.Area{},
		Strengths:       []progress.Area{},
		Recommendations: []progress.Recommendation{},
	}
	if p == nil {
		return plan
	}

	for _, e := range p.Entries() {
		weak, strong := Classify(e.Stat)
		if !weak && !strong {
			continue
		}
		area := progress.Area{
			SubjectID:  e.SubjectID,
			SubtopicID: e.SubtopicID,
			Accuracy:   e.Stat.Accuracy(),
			Attempted:  e.Stat.Attempted,
		}
		if strong {
			plan.Strengths = append(plan.Strengths, area)
			continue
		}
		plan.WeakAreas = append(plan.WeakAreas, area)
		plan.Recommendations = append(plan.Recommendations, progress.Recommendation{
			Type:     recommendationType,
			Subject:  area.SubjectID,
			Subtopic: area.SubtopicID,
			Message:  fmt.Sprintf("Focus on %s - current accuracy: %d%%", area.SubtopicID, Percent(area.Accuracy)),
			Priority: recommendationPriority,
		})
	}
	return plan
}

// Percent converts a [0,1] ratio to a whole percentage, rounding half up.
func Percent(ratio float64) int {
	return int(math.Floor(ratio*100 + 0.5))
}

// Repo is the subset of progress.Repo the engine needs.
type Repo interface {
	Progress(ctx context.Context) *progress.Progress
	StudyPlan(ctx context.Context) *progress.StudyPlan
	SaveStudyPlan(ctx context.Context, plan *progress.StudyPlan) error
}

// Engine re-derives the plan from the stored ledger and caches it in the
// study plan document.
type Engine struct {
	repo Repo
	log  *logger.Logger
	now  func() time.Time
}

// NewEngine creates an Engine.
func NewEngine(repo Repo, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{repo: repo, log: log.With("component", "studyplan"), now: time.Now}
}

// Refresh derives a plan from the current ledger, writes it through to the
// study plan document and returns it. The derived fields replace the stored
// ones; nextGoals is kept. A failed write is returned alongside the plan.
func (e *Engine) Refresh(ctx context.Context) (*progress.StudyPlan, error) {
	prog := e.repo.Progress(ctx)
	derived := Derive(prog)

	doc := e.repo.StudyPlan(ctx)
	if doc.StudentID == "" {
		doc.StudentID = prog.StudentID
	}
	if doc.NextGoals == nil {
		doc.NextGoals = []string{}
	}
	doc.WeakAreas = derived.WeakAreas
	doc.Strengths = derived.Strengths
	doc.Recommendations = derived.Recommendations
	now := e.now()
	doc.LastUpdated = &now

	if err := e.repo.SaveStudyPlan(ctx, doc); err != nil {
		e.log.Warn("study plan not cached", "error", err)
		return doc, fmt.Errorf("save study plan: %w", err)
	}
	return doc, nil
}
