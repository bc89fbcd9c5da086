package session

import "github.com/kasambhusal/sajha-gyan/internal/questionbank"

// DefaultMaxQuestions is the session length when the pool is large enough.
const DefaultMaxQuestions = 10

// Plan is the question set drawn for one practice session.
type Plan struct {
	Subject  questionbank.Subject
	Subtopic questionbank.Subtopic

	// Questions are the drawn questions in presentation order.
	Questions []questionbank.Question

	// Exhausted is true when every question in the subtopic has already
	// been attempted. Questions is empty in that case.
	Exhausted bool
}
