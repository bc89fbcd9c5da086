package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

var (
	// ErrExhausted is returned by Start when no unattempted questions remain.
	ErrExhausted = errors.New("all questions in this subtopic have been attempted")

	// ErrNotAnswerable is returned by Submit outside the active phase.
	ErrNotAnswerable = errors.New("no question is awaiting an answer")

	// ErrNothingAnswered is returned by Complete before any answer was submitted.
	ErrNothingAnswered = errors.New("session has no answered questions")

	// ErrAlreadyCompleted is returned by Complete once the summary was logged.
	ErrAlreadyCompleted = errors.New("session already completed")
)

// Recorder persists session outcomes. progress.Repo implements it.
type Recorder interface {
	Profile(ctx context.Context) *progress.Profile
	Progress(ctx context.Context) *progress.Progress
	RecordAttempt(ctx context.Context, a progress.Attempt) (*progress.Progress, error)
	AppendSession(ctx context.Context, s progress.TestSession) (*progress.TestHistory, error)
}

// Service runs practice sessions against the ledger.
type Service struct {
	repo    Recorder
	planner *Planner
	log     *logger.Logger
	now     func() time.Time
}

// NewService creates a session Service.
func NewService(repo Recorder, planner *Planner, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, planner: planner, log: log.With("component", "session"), now: time.Now}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Planner returns the service's planner.
func (s *Service) Planner() *Planner {
	return s.planner
}

// Start validates the references, draws the question set and opens a
// session. It fails with progress.ErrNotLoggedIn, ErrReferenceNotFound or
// ErrExhausted.
func (s *Service) Start(ctx context.Context, subjectID, subtopicID string) (*SessionState, error) {
	if s.repo.Profile(ctx) == nil {
		return nil, progress.ErrNotLoggedIn
	}
	plan, err := s.planner.BuildPlan(s.repo.Progress(ctx), subjectID, subtopicID)
	if err != nil {
		return nil, err
	}
	if plan.Exhausted {
		return nil, fmt.Errorf("%s/%s: %w", subjectID, subtopicID, ErrExhausted)
	}
	s.log.Debug("session started", "subject", subjectID, "subtopic", subtopicID, "questions", len(plan.Questions))
	return NewSessionState(plan, s.now()), nil
}

// Submit grades the current question and records the attempt in the ledger
// straight away, so answers survive an abandoned session. The returned
// error only reports a failed write; the state is updated regardless.
func (s *Service) Submit(ctx context.Context, state *SessionState, ans Answer) (bool, error) {
	q := state.CurrentQuestion()
	if q == nil || state.Phase != PhaseActive {
		return false, ErrNotAnswerable
	}

	now := s.now()
	timeTaken := max(now.Sub(state.QuestionStartTime).Milliseconds(), 0)
	correct := Grade(*q, ans)

	state.LastAnswerCorrect = correct
	if correct {
		state.TotalCorrect++
	}
	state.Results = append(state.Results, resultFor(*q, state.Plan.Subtopic, ans, correct, timeTaken))
	state.Phase = PhaseFeedback

	_, err := s.repo.RecordAttempt(ctx, progress.Attempt{
		SubjectID:  state.Plan.Subject.ID,
		SubtopicID: state.Plan.Subtopic.ID,
		QuestionID: q.ID,
		Correct:    correct,
		TimeTaken:  timeTaken,
	})
	if err != nil {
		s.log.Warn("attempt not fully persisted", "questionId", q.ID, "error", err)
		return correct, fmt.Errorf("record attempt: %w", err)
	}
	return correct, nil
}

// Next moves past the feedback to the following question. It reports false
// when the answered question was the last one.
func (s *Service) Next(state *SessionState) bool {
	if state.Phase != PhaseFeedback || state.IsLast() {
		return false
	}
	state.Index++
	state.Phase = PhaseActive
	state.QuestionStartTime = s.now()
	return true
}

// Complete appends the session summary to the history log. A session is
// logged at most once; later calls return the stored summary with
// ErrAlreadyCompleted.
func (s *Service) Complete(ctx context.Context, state *SessionState) (*progress.TestSession, error) {
	if state.Phase == PhaseSummary {
		return state.Summary, ErrAlreadyCompleted
	}
	if len(state.Results) == 0 {
		return nil, ErrNothingAnswered
	}
	summary := BuildSummary(state, s.now())
	state.Phase = PhaseSummary

	h, err := s.repo.AppendSession(ctx, summary)
	if h != nil && len(h.Tests) > 0 {
		summary = h.Tests[0]
	}
	state.Summary = &summary
	if err != nil {
		s.log.Warn("session summary not fully persisted", "error", err)
		return &summary, fmt.Errorf("append session: %w", err)
	}
	s.log.Info("session completed", "subject", summary.Subject, "subtopic", summary.Subtopic, "score", summary.Score)
	return &summary, nil
}

func resultFor(q questionbank.Question, st questionbank.Subtopic, ans Answer, correct bool, timeTaken int64) progress.QuestionResult {
	r := progress.QuestionResult{
		QuestionID:    q.ID,
		Question:      q.Question,
		Type:          string(q.Type),
		CorrectAnswer: q.CorrectText(),
		IsCorrect:     correct,
		TimeTaken:     timeTaken,
		Explanation:   q.ExplanationText(),
		Difficulty:    string(q.Difficulty),
	}
	if r.Difficulty == "" {
		r.Difficulty = string(st.Difficulty)
	}
	switch q.Type {
	case questionbank.TypeMCQ:
		if ans.Choice >= 0 && ans.Choice < len(q.Options) {
			r.UserAnswer = q.Options[ans.Choice]
		} else if ans.Choice != NoChoice {
			r.UserAnswer = strconv.Itoa(ans.Choice)
		}
	default:
		r.UserAnswer = ans.Text
	}
	return r
}
