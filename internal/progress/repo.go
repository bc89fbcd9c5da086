package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/store"
)

// DefaultHistoryLimit is how many completed sessions the history keeps.
const DefaultHistoryLimit = 50

var (
	// ErrNotLoggedIn is returned by operations that need a stored profile.
	ErrNotLoggedIn = errors.New("no learner is logged in")

	// ErrInvalidIdentity is returned by Login for a blank id or name.
	ErrInvalidIdentity = errors.New("student id and name are required")
)

// Keys names the four learner documents in the KV store.
type Keys struct {
	Profile     string
	Progress    string
	TestHistory string
	StudyPlan   string
}

// KeysFor builds the document keys under a namespace prefix.
func KeysFor(namespace string) Keys {
	return Keys{
		Profile:     namespace + "_user_profile",
		Progress:    namespace + "_user_progress",
		TestHistory: namespace + "_test_history",
		StudyPlan:   namespace + "_study_plan",
	}
}

// All returns the keys in a fixed order.
func (k Keys) All() []string {
	return []string{k.Profile, k.Progress, k.TestHistory, k.StudyPlan}
}

// Repo owns the four learner documents. Reads never fail: a missing,
// unreachable or unreadable document reads as empty and the problem is
// logged. Writes return errors wrapping store.ErrUnavailable.
//
// Documents are written independently. There is no transaction across keys,
// so a failed second write leaves the first one in place.
type Repo struct {
	kv           store.KV
	keys         Keys
	log          *logger.Logger
	now          func() time.Time
	historyLimit int
	newID        func() string
}

// Option customizes a Repo.
type Option func(*Repo)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Repo) { r.now = now }
}

// WithHistoryLimit overrides how many sessions the history keeps.
func WithHistoryLimit(n int) Option {
	return func(r *Repo) {
		if n > 0 {
			r.historyLimit = n
		}
	}
}

// WithIDGenerator overrides how session ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repo) { r.newID = fn }
}

// NewRepo creates a Repo over kv with keys under namespace.
func NewRepo(kv store.KV, namespace string, log *logger.Logger, opts ...Option) *Repo {
	if log == nil {
		log = logger.Nop()
	}
	r := &Repo{
		kv:           kv,
		keys:         KeysFor(namespace),
		log:          log.With("component", "progress"),
		now:          time.Now,
		historyLimit: DefaultHistoryLimit,
		newID:        newSessionID,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Keys returns the document keys this repo uses.
func (r *Repo) Keys() Keys {
	return r.keys
}

// load decodes the document at key into v. It reports false when the
// document is absent or could not be read.
func (r *Repo) load(ctx context.Context, key string, v any) bool {
	data, err := r.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		r.log.Warn("read degraded to empty", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.log.Warn("discarding unreadable document", "key", key, "error", err)
		return false
	}
	return true
}

func (r *Repo) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w: %w", key, store.ErrUnavailable, err)
	}
	if err := r.kv.Set(ctx, key, data); err != nil {
		r.log.Warn("write failed", "key", key, "error", err)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Profile returns the stored profile, or nil when nobody is logged in.
func (r *Repo) Profile(ctx context.Context) *Profile {
	var p Profile
	if !r.load(ctx, r.keys.Profile, &p) {
		return nil
	}
	return &p
}

// Progress returns the ledger. It is never nil.
func (r *Repo) Progress(ctx context.Context) *Progress {
	var p Progress
	if !r.load(ctx, r.keys.Progress, &p) {
		return NewProgress(r.studentID(ctx), r.now())
	}
	return &p
}

// History returns the session log, newest first. It is never nil.
func (r *Repo) History(ctx context.Context) *TestHistory {
	var h TestHistory
	if !r.load(ctx, r.keys.TestHistory, &h) {
		return &TestHistory{StudentID: r.studentID(ctx), Tests: []TestSession{}}
	}
	if h.Tests == nil {
		h.Tests = []TestSession{}
	}
	return &h
}

// StudyPlan returns the stored plan. It is never nil.
func (r *Repo) StudyPlan(ctx context.Context) *StudyPlan {
	var sp StudyPlan
	if !r.load(ctx, r.keys.StudyPlan, &sp) {
		return emptyStudyPlan(r.studentID(ctx))
	}
	return &sp
}

// SaveStudyPlan replaces the plan document.
func (r *Repo) SaveStudyPlan(ctx context.Context, plan *StudyPlan) error {
	return r.save(ctx, r.keys.StudyPlan, plan)
}

func (r *Repo) studentID(ctx context.Context) string {
	if p := r.Profile(ctx); p != nil {
		return p.StudentID
	}
	return ""
}

func emptyStudyPlan(studentID string) *StudyPlan {
	return &StudyPlan{
		StudentID:       studentID,
		Recommendations: []Recommendation{},
		WeakAreas:       []Area{},
		Strengths:       []Area{},
		NextGoals:       []string{},
	}
}
