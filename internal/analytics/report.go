package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

// Report recommendation gates, applied per subject.
const (
	FocusBelowAccuracy     = 70
	FocusMinAttempts       = 5
	ExcellentFromAccuracy  = 85
	ExcellentMinAttempts   = 10
	RecentPerformanceTests = 5
)

// StudentInfo identifies the learner on an exported report.
type StudentInfo struct {
	Name       string    `json:"name"`
	StudentID  string    `json:"studentId"`
	JoinDate   time.Time `json:"joinDate"`
	ReportDate time.Time `json:"reportDate"`
}

// ProgressReport is the exported progress document.
type ProgressReport struct {
	StudentInfo       StudentInfo            `json:"studentInfo"`
	OverallStats      Stats                  `json:"overallStats"`
	SubjectBreakdown  []SubjectStats         `json:"subjectBreakdown"`
	RecentPerformance []progress.TestSession `json:"recentPerformance"`
	Recommendations   []string               `json:"recommendations"`
}

// ReportRecommendations lists focus subjects first, then excellent ones,
// each group in breakdown order.
func ReportRecommendations(breakdown []SubjectStats) []string {
	out := []string{}
	for _, s := range breakdown {
		if s.Accuracy < FocusBelowAccuracy && s.Attempted >= FocusMinAttempts {
			out = append(out, fmt.Sprintf("Focus more on %s - current accuracy: %d%%", s.Title, s.Accuracy))
		}
	}
	for _, s := range breakdown {
		if s.Accuracy >= ExcellentFromAccuracy && s.Attempted >= ExcellentMinAttempts {
			out = append(out, fmt.Sprintf("Excellent work in %s! Consider advanced topics.", s.Title))
		}
	}
	return out
}

// BuildReport assembles the export document. A nil ledger yields no
// recommendations.
func BuildReport(bank *questionbank.Bank, profile *progress.Profile, p *progress.Progress, h *progress.TestHistory, now time.Time) ProgressReport {
	r := ProgressReport{
		StudentInfo:       StudentInfo{ReportDate: now.UTC()},
		OverallStats:      OverallStats(p),
		SubjectBreakdown:  SubjectBreakdown(bank, p),
		RecentPerformance: []progress.TestSession{},
		Recommendations:   []string{},
	}
	if profile != nil {
		r.StudentInfo.Name = profile.Name
		r.StudentInfo.StudentID = profile.StudentID
		r.StudentInfo.JoinDate = profile.JoinDate
	}
	if h != nil {
		r.RecentPerformance = append(r.RecentPerformance, h.Tests[:min(RecentPerformanceTests, len(h.Tests))]...)
	}
	if p != nil {
		r.Recommendations = ReportRecommendations(r.SubjectBreakdown)
	}
	return r
}

// WriteReport writes r as indented JSON.
func WriteReport(w io.Writer, r ProgressReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// ReportFileName is the default export file name for a learner on now's
// UTC date. Path separators in the name are replaced.
func ReportFileName(name string, now time.Time) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	return fmt.Sprintf("%s_Progress_Report_%s.json", safe, now.UTC().Format(time.DateOnly))
}
