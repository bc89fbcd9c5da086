// Package analytics turns the ledger and the session history into the
// numbers shown on the stats, history and report surfaces. Every function
// here is a pure read over its arguments.
package analytics

import (
	"math"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

// Stats are the learner's lifetime totals taken from the ledger.
type Stats struct {
	TotalQuestions int `json:"totalQuestions" yaml:"totalQuestions"`
	CorrectAnswers int `json:"correctAnswers" yaml:"correctAnswers"`
	Accuracy       int `json:"accuracy" yaml:"accuracy"`   // percent
	TotalTime      int `json:"totalTime" yaml:"totalTime"` // minutes
}

// SubjectStats is one catalog subject's slice of the ledger.
type SubjectStats struct {
	SubjectID string `json:"subjectId" yaml:"subjectId"`
	Title     string `json:"title" yaml:"title"`
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	Attempted int    `json:"attempted" yaml:"attempted"`
	Correct   int    `json:"correct" yaml:"correct"`
	Accuracy  int    `json:"accuracy" yaml:"accuracy"` // percent
	Progress  int    `json:"progress" yaml:"progress"` // percent of subtopics touched
}

// percent rounds 100*num/den half up; a zero denominator yields 0.
func percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return roundHalfUp(100 * float64(num) / float64(den))
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func millisToMinutes(ms int64) int {
	return roundHalfUp(float64(ms) / 1000 / 60)
}

// OverallStats sums every subtopic in the ledger.
func OverallStats(p *progress.Progress) Stats {
	if p == nil {
		return Stats{}
	}
	attempted, correct, total := p.Totals()
	return Stats{
		TotalQuestions: attempted,
		CorrectAnswers: correct,
		Accuracy:       percent(correct, attempted),
		TotalTime:      millisToMinutes(total),
	}
}

// SubjectBreakdown reports each catalog subject with at least one attempt,
// in catalog order. Ledger subjects the catalog no longer has are skipped.
func SubjectBreakdown(bank *questionbank.Bank, p *progress.Progress) []SubjectStats {
	out := []SubjectStats{}
	if bank == nil || p == nil {
		return out
	}
	for _, subj := range bank.Subjects() {
		sp, ok := p.Subject(subj.ID)
		if !ok {
			continue
		}
		s := SubjectStats{
			SubjectID: subj.ID,
			Title:     subj.Title,
			Icon:      subj.Icon,
			Color:     subj.Color,
		}
		touched := 0
		for _, st := range sp.Subtopics {
			s.Attempted += st.Stat.Attempted
			s.Correct += st.Stat.Correct
			if st.Stat.Attempted > 0 {
				touched++
			}
		}
		if s.Attempted == 0 {
			continue
		}
		s.Accuracy = percent(s.Correct, s.Attempted)
		s.Progress = min(percent(touched, len(subj.Subtopics)), 100)
		out = append(out, s)
	}
	return out
}
