package session

import (
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseActive   SessionPhase = iota // Waiting for an answer
	PhaseFeedback                     // Showing answer feedback
	PhaseSummary                      // Session completed and logged
)

// SessionState tracks the runtime state of an active session.
type SessionState struct {
	// Plan is the question set drawn at start.
	Plan *Plan

	// Index is the position of the current question in Plan.Questions.
	Index int

	// Results holds one entry per submitted answer, in order.
	Results []progress.QuestionResult

	// TotalCorrect is the count of correct answers so far.
	TotalCorrect int

	// StartTime is when the session began.
	StartTime time.Time

	// QuestionStartTime is when the current question was first displayed.
	QuestionStartTime time.Time

	// Phase is the current session phase.
	Phase SessionPhase

	// LastAnswerCorrect records whether the most recent answer was correct.
	LastAnswerCorrect bool

	// Summary is set once the session has been completed.
	Summary *progress.TestSession
}

// NewSessionState starts a session over plan at now.
func NewSessionState(plan *Plan, now time.Time) *SessionState {
	return &SessionState{
		Plan:              plan,
		Results:           make([]progress.QuestionResult, 0, len(plan.Questions)),
		StartTime:         now,
		QuestionStartTime: now,
		Phase:             PhaseActive,
	}
}

// CurrentQuestion returns the question being shown, or nil past the end.
func (s *SessionState) CurrentQuestion() *questionbank.Question {
	if s.Index < 0 || s.Index >= len(s.Plan.Questions) {
		return nil
	}
	return &s.Plan.Questions[s.Index]
}

// IsLast reports whether the current question is the final one.
func (s *SessionState) IsLast() bool {
	return s.Index >= len(s.Plan.Questions)-1
}

// Answered returns the number of submitted answers.
func (s *SessionState) Answered() int {
	return len(s.Results)
}

// Total returns the number of questions in the session.
func (s *SessionState) Total() int {
	return len(s.Plan.Questions)
}
