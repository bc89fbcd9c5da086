package progress

import (
	"net/url"
	"time"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// AvatarURL derives the avatar reference for a student id.
func AvatarURL(studentID string) string {
	return avatarBaseURL + url.QueryEscape(studentID)
}

// Profile is the logged-in learner's identity plus lifetime counters.
type Profile struct {
	StudentID      string    `json:"studentId"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar"`
	JoinDate       time.Time `json:"joinDate"`
	TotalTests     int       `json:"totalTests"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
}

// Accuracy returns correctAnswers/totalQuestions, or 0 with no answers.
func (p Profile) Accuracy() float64 {
	if p.TotalQuestions == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) / float64(p.TotalQuestions)
}

// Result is the outcome of a single attempt.
type Result string

const (
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
)

// AttemptRecord is one answered question in a subtopic's history.
type AttemptRecord struct {
	QuestionID string `json:"questionId"`
	Result     Result `json:"result"`
	Timestamp  int64  `json:"timestamp"` // unix millis
	TimeTaken  int64  `json:"timeTaken"` // millis
}

// SubtopicStat aggregates every attempt in one subtopic.
// Attempted always equals len(History).
type SubtopicStat struct {
	Attempted   int             `json:"attempted"`
	Correct     int             `json:"correct"`
	History     []AttemptRecord `json:"history"`
	AverageTime float64         `json:"averageTime"` // millis
	LastAttempt *time.Time      `json:"lastAttempt"`
}

// Accuracy returns correct/attempted, or 0 when nothing was attempted.
func (s SubtopicStat) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// TotalTime sums timeTaken over the history.
func (s SubtopicStat) TotalTime() int64 {
	var total int64
	for _, h := range s.History {
		total += h.TimeTaken
	}
	return total
}

// QuestionResult is the per-question line of a completed session.
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	Question      string `json:"question"`
	Type          string `json:"type"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	TimeTaken     int64  `json:"timeTaken"`
	Explanation   string `json:"explanation,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
}

// TestSession is the summary of one completed practice session.
type TestSession struct {
	ID        string           `json:"id"`
	Subject   string           `json:"subject"`
	Subtopic  string           `json:"subtopic"`
	Questions int              `json:"questions"`
	Correct   int              `json:"correct"`
	Score     int              `json:"score"`
	TotalTime int64            `json:"totalTime"` // millis
	Results   []QuestionResult `json:"results"`
	Date      time.Time        `json:"date"`
}

// TestHistory holds completed sessions, newest first.
type TestHistory struct {
	StudentID string        `json:"studentId"`
	Tests     []TestSession `json:"tests"`
}

// Area is a subtopic classified by the study plan.
type Area struct {
	SubjectID  string  `json:"subjectId"`
	SubtopicID string  `json:"subtopicId"`
	Accuracy   float64 `json:"accuracy"`
	Attempted  int     `json:"attempted"`
}

// Recommendation is a study plan action item.
type Recommendation struct {
	Type     string `json:"type"`
	Subject  string `json:"subject"`
	Subtopic string `json:"subtopic"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// StudyPlan is the persisted plan document. WeakAreas, Strengths and
// Recommendations are derived; NextGoals is carried through untouched.
type StudyPlan struct {
	StudentID       string           `json:"studentId"`
	Recommendations []Recommendation `json:"recommendations"`
	WeakAreas       []Area           `json:"weakAreas"`
	Strengths       []Area           `json:"strengths"`
	NextGoals       []string         `json:"nextGoals"`
	LastUpdated     *time.Time       `json:"lastUpdated,omitempty"`
}
