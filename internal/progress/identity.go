package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Login starts a fresh session for the learner. All four documents are
// re-initialized unconditionally, so logging in again with the same id
// resets that learner's data.
func (r *Repo) Login(ctx context.Context, studentID, name string) (*Profile, error) {
	studentID = strings.TrimSpace(studentID)
	name = strings.TrimSpace(name)
	if studentID == "" || name == "" {
		return nil, ErrInvalidIdentity
	}

	now := r.now()
	profile := &Profile{
		StudentID: studentID,
		Name:      name,
		Avatar:    AvatarURL(studentID),
		JoinDate:  now,
	}

	errs := errors.Join(
		r.save(ctx, r.keys.Profile, profile),
		r.save(ctx, r.keys.Progress, NewProgress(studentID, now)),
		r.save(ctx, r.keys.TestHistory, &TestHistory{StudentID: studentID, Tests: []TestSession{}}),
		r.save(ctx, r.keys.StudyPlan, emptyStudyPlan(studentID)),
	)
	if errs != nil {
		return profile, fmt.Errorf("initialize learner data: %w", errs)
	}
	r.log.Info("learner logged in", "studentId", studentID)
	return profile, nil
}

// Logout removes all four documents.
func (r *Repo) Logout(ctx context.Context) error {
	var errs []error
	for _, key := range r.keys.All() {
		if err := r.kv.Delete(ctx, key); err != nil {
			r.log.Warn("delete failed", "key", key, "error", err)
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Rename changes the display name of the logged-in learner.
func (r *Repo) Rename(ctx context.Context, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidIdentity
	}
	p := r.Profile(ctx)
	if p == nil {
		return nil, ErrNotLoggedIn
	}
	p.Name = name
	if err := r.save(ctx, r.keys.Profile, p); err != nil {
		return p, err
	}
	return p, nil
}
