package analytics

import (
	"fmt"
	"strings"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

// InsightKind grades an insight for display.
type InsightKind string

const (
	InsightSuccess InsightKind = "success"
	InsightWarning InsightKind = "warning"
	InsightInfo    InsightKind = "info"
)

// Trend thresholds over the most recent sessions.
const (
	TrendWindow     = 5
	TrendMinTests   = 3
	TrendStrongMean = 80
	TrendWeakMean   = 60
)

// Insight is a short observation with a suggested action.
type Insight struct {
	Kind    InsightKind `json:"type" yaml:"type"`
	Title   string      `json:"title" yaml:"title"`
	Message string      `json:"message" yaml:"message"`
	Action  string      `json:"action" yaml:"action"`
}

// Insights looks at the recent score trend and at how evenly practice is
// spread across subjects. It returns an empty slice when the ledger or the
// history is missing.
func Insights(bank *questionbank.Bank, p *progress.Progress, h *progress.TestHistory) []Insight {
	out := []Insight{}
	if p == nil || h == nil {
		return out
	}
	if in, ok := trendInsight(h.Tests); ok {
		out = append(out, in)
	}
	if in, ok := balanceInsight(bank, p); ok {
		out = append(out, in)
	}
	return out
}

func trendInsight(tests []progress.TestSession) (Insight, bool) {
	recent := tests[:min(TrendWindow, len(tests))]
	if len(recent) < TrendMinTests {
		return Insight{}, false
	}
	sum := 0
	for _, t := range recent {
		sum += t.Score
	}
	mean := float64(sum) / float64(len(recent))

	switch {
	case mean >= TrendStrongMean:
		return Insight{
			Kind:    InsightSuccess,
			Title:   "Excellent Performance Trend",
			Message: fmt.Sprintf("Your average score in recent tests is %d%%. Keep up the great work!", roundHalfUp(mean)),
			Action:  "Try harder difficulty levels",
		}, true
	case mean < TrendWeakMean:
		return Insight{
			Kind:    InsightWarning,
			Title:   "Performance Needs Attention",
			Message: fmt.Sprintf("Your recent average is %d%%. Consider reviewing fundamental concepts.", roundHalfUp(mean)),
			Action:  "Focus on weak areas",
		}, true
	}
	return Insight{}, false
}

// balanceInsight flags subjects with under half the attempts of the most
// practiced one, once the spread exceeds three to one.
func balanceInsight(bank *questionbank.Bank, p *progress.Progress) (Insight, bool) {
	if len(p.Subjects) == 0 || bank == nil {
		return Insight{}, false
	}
	counts := make([]int, len(p.Subjects))
	hi, lo := 0, -1
	for i, sp := range p.Subjects {
		for _, st := range sp.Subtopics {
			counts[i] += st.Stat.Attempted
		}
		hi = max(hi, counts[i])
		if lo < 0 || counts[i] < lo {
			lo = counts[i]
		}
	}
	if hi <= lo*3 {
		return Insight{}, false
	}

	var neglected []string
	for i, sp := range p.Subjects {
		if float64(counts[i]) >= float64(hi)/2 {
			continue
		}
		if subj, err := bank.Subject(sp.ID); err == nil {
			neglected = append(neglected, subj.Title)
		}
	}
	if len(neglected) == 0 {
		return Insight{}, false
	}
	return Insight{
		Kind:    InsightInfo,
		Title:   "Subject Balance Recommendation",
		Message: "Consider practicing more in: " + strings.Join(neglected, ", "),
		Action:  "Balance your study schedule",
	}, true
}
