package analytics

import (
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

// WeekDays is the length of the weekly progress window.
const WeekDays = 7

const defaultSubjectColor = "#8884d8"

// DayProgress is one calendar day (UTC) of completed sessions.
type DayProgress struct {
	Date      string `json:"date" yaml:"date"` // YYYY-MM-DD
	Questions int    `json:"questions" yaml:"questions"`
	Tests     int    `json:"tests" yaml:"tests"`
	Accuracy  int    `json:"accuracy" yaml:"accuracy"` // mean session score
}

// SubjectTime is the time spent on one subject, in minutes.
type SubjectTime struct {
	SubjectID string `json:"subjectId" yaml:"subjectId"`
	Name      string `json:"name" yaml:"name"`
	Minutes   int    `json:"time" yaml:"time"`
	Color     string `json:"color" yaml:"color"`
}

// TimeReport aggregates study time across sessions and subjects.
type TimeReport struct {
	TotalStudyTime          int64         `json:"totalStudyTime" yaml:"totalStudyTime"`         // millis
	AverageSessionTime      int           `json:"averageSessionTime" yaml:"averageSessionTime"` // seconds
	WeeklyProgress          []DayProgress `json:"weeklyProgress" yaml:"weeklyProgress"`
	SubjectTimeDistribution []SubjectTime `json:"subjectTimeDistribution" yaml:"subjectTimeDistribution"`
}

// TimeAnalytics computes session totals, the last seven days of activity
// ending on now's UTC date, and per-subject time in ledger order.
func TimeAnalytics(bank *questionbank.Bank, p *progress.Progress, h *progress.TestHistory, now time.Time) TimeReport {
	r := TimeReport{
		WeeklyProgress:          weekly(h, now),
		SubjectTimeDistribution: []SubjectTime{},
	}

	if h != nil {
		for _, t := range h.Tests {
			r.TotalStudyTime += t.TotalTime
		}
		if n := len(h.Tests); n > 0 {
			r.AverageSessionTime = roundHalfUp(float64(r.TotalStudyTime) / float64(n) / 1000)
		}
	}

	if p != nil {
		for _, sp := range p.Subjects {
			var ms int64
			for _, st := range sp.Subtopics {
				ms += st.Stat.TotalTime()
			}
			if ms <= 0 {
				continue
			}
			r.SubjectTimeDistribution = append(r.SubjectTimeDistribution, subjectTime(bank, sp.ID, ms))
		}
	}
	return r
}

func subjectTime(bank *questionbank.Bank, subjectID string, ms int64) SubjectTime {
	st := SubjectTime{SubjectID: subjectID, Name: subjectID, Minutes: millisToMinutes(ms), Color: defaultSubjectColor}
	if bank == nil {
		return st
	}
	if subj, err := bank.Subject(subjectID); err == nil {
		st.Name = subj.Title
		if subj.Color != "" {
			st.Color = subj.Color
		}
	}
	return st
}

func weekly(h *progress.TestHistory, now time.Time) []DayProgress {
	days := make([]DayProgress, WeekDays)
	index := make(map[string]int, WeekDays)
	today := now.UTC()
	for i := range WeekDays {
		d := today.AddDate(0, 0, i-(WeekDays-1)).Format(time.DateOnly)
		days[i] = DayProgress{Date: d}
		index[d] = i
	}
	if h == nil {
		return days
	}

	scores := make([]int, WeekDays)
	for _, t := range h.Tests {
		i, ok := index[t.Date.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		days[i].Questions += t.Questions
		days[i].Tests++
		scores[i] += t.Score
	}
	for i := range days {
		if days[i].Tests > 0 {
			days[i].Accuracy = roundHalfUp(float64(scores[i]) / float64(days[i].Tests))
		}
	}
	return days
}
