package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "test_" + uuid.NewString()
	}
	return "test_" + id.String()
}

// AppendSession stamps the summary with an id and date, puts it at the head
// of the history and drops anything beyond the history limit. The profile's
// totalTests counter is bumped in a second, independent write.
func (r *Repo) AppendSession(ctx context.Context, s TestSession) (*TestHistory, error) {
	if s.Questions < 1 {
		return nil, fmt.Errorf("append session: questions must be at least 1, got %d", s.Questions)
	}
	s.ID = r.newID()
	s.Date = r.now()
	if s.Results == nil {
		s.Results = []QuestionResult{}
	}

	h := r.History(ctx)
	tests := make([]TestSession, 0, min(len(h.Tests)+1, r.historyLimit))
	tests = append(tests, s)
	for _, t := range h.Tests {
		if len(tests) == r.historyLimit {
			break
		}
		tests = append(tests, t)
	}
	h.Tests = tests
	historyErr := r.save(ctx, r.keys.TestHistory, h)

	var profileErr error
	if profile := r.Profile(ctx); profile != nil {
		profile.TotalTests++
		profileErr = r.save(ctx, r.keys.Profile, profile)
	}

	return h, errors.Join(historyErr, profileErr)
}
