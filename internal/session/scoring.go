package session

import (
	"math"
	"strings"

	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

// WrittenMinLength is the placeholder grading rule for written answers: a
// trimmed answer longer than this many characters counts as correct. It is
// not a grader and makes no attempt to compare against the answer guide.
const WrittenMinLength = 10

// NoChoice marks a multiple-choice answer with nothing selected.
const NoChoice = -1

// Answer is a learner's response. Choice is used for multiple choice,
// Text for written questions.
type Answer struct {
	Choice int
	Text   string
}

// Choose returns a multiple-choice answer.
func Choose(index int) Answer {
	return Answer{Choice: index}
}

// Write returns a written answer.
func Write(text string) Answer {
	return Answer{Choice: NoChoice, Text: text}
}

// Grade decides correctness. Multiple choice compares option indices
// exactly; written answers use the WrittenMinLength placeholder.
func Grade(q questionbank.Question, a Answer) bool {
	switch q.Type {
	case questionbank.TypeMCQ:
		return a.Choice == q.CorrectAnswer
	case questionbank.TypeWritten:
		return len([]rune(strings.TrimSpace(a.Text))) > WrittenMinLength
	default:
		return false
	}
}

// ScorePercent is round(100 * correct / total), rounding half up.
// A session with no questions scores 0.
func ScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(100*float64(correct)/float64(total) + 0.5))
}
