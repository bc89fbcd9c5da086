package session

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

// ErrReferenceNotFound is returned when a subject or subtopic id does not
// resolve against the question bank.
var ErrReferenceNotFound = errors.New("unknown subject or subtopic")

// Planner draws unattempted questions for a session.
type Planner struct {
	bank         *questionbank.Bank
	maxQuestions int
	rng          *rand.Rand
}

// NewPlanner creates a Planner. A nil rng uses the global source;
// maxQuestions < 1 means DefaultMaxQuestions.
func NewPlanner(bank *questionbank.Bank, maxQuestions int, rng *rand.Rand) *Planner {
	if maxQuestions < 1 {
		maxQuestions = DefaultMaxQuestions
	}
	return &Planner{bank: bank, maxQuestions: maxQuestions, rng: rng}
}

// Bank returns the catalog the planner draws from.
func (p *Planner) Bank() *questionbank.Bank {
	return p.bank
}

// BuildPlan resolves the subtopic and draws up to maxQuestions questions
// that the ledger has no attempt for. An exhausted pool is reported through
// Plan.Exhausted, not as an error.
func (p *Planner) BuildPlan(prog *progress.Progress, subjectID, subtopicID string) (*Plan, error) {
	subject, subtopic, err := p.resolve(subjectID, subtopicID)
	if err != nil {
		return nil, err
	}

	pool := Unattempted(subtopic.Questions, prog.AttemptedQuestions(subjectID, subtopicID))
	if len(pool) == 0 {
		return &Plan{Subject: subject, Subtopic: subtopic, Exhausted: true}, nil
	}

	p.shuffle(pool)
	n := min(p.maxQuestions, len(pool))
	return &Plan{Subject: subject, Subtopic: subtopic, Questions: pool[:n]}, nil
}

// Available counts the unattempted questions left in a subtopic.
func (p *Planner) Available(prog *progress.Progress, subjectID, subtopicID string) (int, error) {
	_, subtopic, err := p.resolve(subjectID, subtopicID)
	if err != nil {
		return 0, err
	}
	return len(Unattempted(subtopic.Questions, prog.AttemptedQuestions(subjectID, subtopicID))), nil
}

func (p *Planner) resolve(subjectID, subtopicID string) (questionbank.Subject, questionbank.Subtopic, error) {
	subject, err := p.bank.Subject(subjectID)
	if err != nil {
		return questionbank.Subject{}, questionbank.Subtopic{}, fmt.Errorf("%w: %w", ErrReferenceNotFound, err)
	}
	subtopic, err := p.bank.Subtopic(subjectID, subtopicID)
	if err != nil {
		return questionbank.Subject{}, questionbank.Subtopic{}, fmt.Errorf("%w: %w", ErrReferenceNotFound, err)
	}
	return subject, subtopic, nil
}

// shuffle is a Fisher-Yates shuffle, so every permutation is equally likely.
func (p *Planner) shuffle(qs []questionbank.Question) {
	swap := func(i, j int) { qs[i], qs[j] = qs[j], qs[i] }
	if p.rng != nil {
		p.rng.Shuffle(len(qs), swap)
		return
	}
	rand.Shuffle(len(qs), swap)
}

// Unattempted returns a fresh slice of the questions whose id is not in
// attempted, keeping catalog order.
func Unattempted(questions []questionbank.Question, attempted []string) []questionbank.Question {
	seen := make(map[string]bool, len(attempted))
	for _, id := range attempted {
		seen[id] = true
	}
	pool := make([]questionbank.Question, 0, len(questions))
	for _, q := range questions {
		if !seen[q.ID] {
			pool = append(pool, q)
		}
	}
	return pool
}
