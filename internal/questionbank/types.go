package questionbank

// QuestionType distinguishes how an answer is captured and graded.
type QuestionType string

const (
	TypeMCQ     QuestionType = "mcq"
	TypeWritten QuestionType = "written"
)

// DisplayName returns the label shown next to a question.
func (t QuestionType) DisplayName() string {
	switch t {
	case TypeMCQ:
		return "Multiple Choice"
	case TypeWritten:
		return "Written Answer"
	default:
		return string(t)
	}
}

// Difficulty labels a subtopic or a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns the difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Question is a single catalog item.
type Question struct {
	ID            string       `json:"id" yaml:"id"`
	Type          QuestionType `json:"type" yaml:"type"`
	Question      string       `json:"question" yaml:"question"`
	Options       []string     `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer int          `json:"correctAnswer" yaml:"correctAnswer"`
	AnswerGuide   string       `json:"answerGuide,omitempty" yaml:"answerGuide,omitempty"`
	Explanation   string       `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Difficulty    Difficulty   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// CorrectText returns the human-readable expected answer: the correct
// option for multiple choice, the answer guide for written questions.
func (q Question) CorrectText() string {
	if q.Type == TypeMCQ {
		if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) {
			return q.Options[q.CorrectAnswer]
		}
		return ""
	}
	return q.AnswerGuide
}

// ExplanationText falls back to the answer guide when no explanation is set.
func (q Question) ExplanationText() string {
	if q.Explanation != "" {
		return q.Explanation
	}
	return q.AnswerGuide
}

// Subtopic groups questions within a subject.
type Subtopic struct {
	ID         string     `json:"subtopicId" yaml:"subtopicId"`
	Title      string     `json:"title" yaml:"title"`
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Questions  []Question `json:"questions" yaml:"questions"`
}

// Subject is a top-level catalog entry.
type Subject struct {
	ID          string     `json:"subjectId" yaml:"subjectId"`
	Title       string     `json:"title" yaml:"title"`
	Icon        string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color       string     `json:"color,omitempty" yaml:"color,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Subtopics   []Subtopic `json:"subtopics" yaml:"subtopics"`
}

// QuestionCount returns the number of questions across all subtopics.
func (s Subject) QuestionCount() int {
	n := 0
	for _, st := range s.Subtopics {
		n += len(st.Questions)
	}
	return n
}
