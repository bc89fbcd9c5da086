package progress

import (
	"context"
	"errors"
)

// Attempt is one submitted answer.
type Attempt struct {
	SubjectID  string
	SubtopicID string
	QuestionID string
	Correct    bool
	TimeTaken  int64 // millis
}

// RecordAttempt appends the attempt to the ledger and bumps the profile
// counters. The ledger is written first, then the profile; each write can
// fail on its own and the returned error joins whatever failed. The
// returned ledger reflects the attempt either way.
//
// When no profile is stored the profile write is skipped.
func (r *Repo) RecordAttempt(ctx context.Context, a Attempt) (*Progress, error) {
	now := r.now()

	prog := r.Progress(ctx)
	prog.Record(a.SubjectID, a.SubtopicID, a.QuestionID, a.Correct, a.TimeTaken, now)
	ledgerErr := r.save(ctx, r.keys.Progress, prog)

	var profileErr error
	if profile := r.Profile(ctx); profile != nil {
		profile.TotalQuestions++
		if a.Correct {
			profile.CorrectAnswers++
		}
		profileErr = r.save(ctx, r.keys.Profile, profile)
	} else {
		r.log.Warn("attempt recorded without a profile", "questionId", a.QuestionID)
	}

	return prog, errors.Join(ledgerErr, profileErr)
}

// AttemptedQuestions returns the distinct question ids attempted in a
// subtopic, or in the whole subject when subtopicID is empty.
func (r *Repo) AttemptedQuestions(ctx context.Context, subjectID, subtopicID string) []string {
	return r.Progress(ctx).AttemptedQuestions(subjectID, subtopicID)
}
