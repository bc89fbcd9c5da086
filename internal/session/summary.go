package session

import (
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
)

// BuildSummary creates the history entry for a session. Only submitted
// answers count; the id and date are stamped when the entry is appended.
func BuildSummary(state *SessionState, now time.Time) progress.TestSession {
	results := make([]progress.QuestionResult, len(state.Results))
	copy(results, state.Results)

	return progress.TestSession{
		Subject:   state.Plan.Subject.ID,
		Subtopic:  state.Plan.Subtopic.ID,
		Questions: len(results),
		Correct:   state.TotalCorrect,
		Score:     ScorePercent(state.TotalCorrect, len(results)),
		TotalTime: max(now.Sub(state.StartTime).Milliseconds(), 0),
		Results:   results,
	}
}
