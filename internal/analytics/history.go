package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
)

// DefaultPerPage is the history page size.
const DefaultPerPage = 10

// AllSubjects disables the subject filter.
const AllSubjects = "all"

// SortBy orders history results. Every order is descending.
type SortBy string

const (
	SortByDate      SortBy = "date"
	SortByScore     SortBy = "score"
	SortByQuestions SortBy = "questions"
)

// ParseSortBy accepts "", "date", "score" or "questions".
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByDate:
		return SortByDate, nil
	case SortByScore:
		return SortByScore, nil
	case SortByQuestions:
		return SortByQuestions, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want date, score or questions)", s)
}

// Query selects one page of the session history.
type Query struct {
	Search  string // case-insensitive substring of subject or subtopic id
	Subject string // exact subject id; "" or AllSubjects matches every subject
	SortBy  SortBy
	Page    int // 1-based; clamped into range
	PerPage int
}

// Page is one page of matching sessions.
type Page struct {
	Tests      []progress.TestSession `json:"tests"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"totalPages"`
}

// QueryHistory filters, sorts and pages the history. The stored history is
// not modified.
func QueryHistory(h *progress.TestHistory, q Query) Page {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := Page{Tests: []progress.TestSession{}, Page: 1}
	if h == nil {
		return page
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	var matched []progress.TestSession
	for _, t := range h.Tests {
		if q.Subject != "" && q.Subject != AllSubjects && t.Subject != q.Subject {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Subject), search) &&
			!strings.Contains(strings.ToLower(t.Subtopic), search) {
			continue
		}
		matched = append(matched, t)
	}

	slices.SortStableFunc(matched, func(a, b progress.TestSession) int {
		switch q.SortBy {
		case SortByScore:
			return cmp.Compare(b.Score, a.Score)
		case SortByQuestions:
			return cmp.Compare(b.Questions, a.Questions)
		default:
			return b.Date.Compare(a.Date)
		}
	})

	page.Total = len(matched)
	page.TotalPages = (len(matched) + perPage - 1) / perPage
	page.Page = min(max(q.Page, 1), max(page.TotalPages, 1))
	start := (page.Page - 1) * perPage
	end := min(start+perPage, len(matched))
	if start < end {
		page.Tests = matched[start:end]
	}
	return page
}

// HistorySubjects returns the distinct subject ids in the history, in
// order of first appearance.
func HistorySubjects(h *progress.TestHistory) []string {
	out := []string{}
	if h == nil {
		return out
	}
	for _, t := range h.Tests {
		if !slices.Contains(out, t.Subject) {
			out = append(out, t.Subject)
		}
	}
	return out
}

// DifficultyScore is the mean session score over sessions that contained
// at least one question of a difficulty.
type DifficultyScore struct {
	Difficulty questionbank.Difficulty `json:"difficulty" yaml:"difficulty"`
	Sessions   int                     `json:"sessions" yaml:"sessions"`
	Score      int                     `json:"score" yaml:"score"`
}

// DifficultyScores reports every difficulty level, easy to hard. A level no
// session touched scores 0.
func DifficultyScores(h *progress.TestHistory) []DifficultyScore {
	levels := questionbank.AllDifficulties()
	out := make([]DifficultyScore, len(levels))
	for i, d := range levels {
		out[i].Difficulty = d
		if h == nil {
			continue
		}
		sum := 0
		for _, t := range h.Tests {
			if !slices.ContainsFunc(t.Results, func(r progress.QuestionResult) bool {
				return r.Difficulty == string(d)
			}) {
				continue
			}
			out[i].Sessions++
			sum += t.Score
		}
		if out[i].Sessions > 0 {
			out[i].Score = roundHalfUp(float64(sum) / float64(out[i].Sessions))
		}
	}
	return out
}
