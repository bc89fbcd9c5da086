package questionbank

import (
	"fmt"
	"strings"
)

// validateSubjects performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateSubjects(subjects []Subject) error {
	var errs []string

	if len(subjects) == 0 {
		errs = append(errs, "catalog has no subjects")
	}

	subjectIDs := make(map[string]bool, len(subjects))

	for _, s := range subjects {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("subject %q has empty subjectId", s.Title))
		}
		if subjectIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate subject ID: %q", s.ID))
		}
		subjectIDs[s.ID] = true

		subtopicIDs := make(map[string]bool, len(s.Subtopics))
		for _, st := range s.Subtopics {
			prefix := fmt.Sprintf("subject %q subtopic %q", s.ID, st.ID)
			if st.ID == "" {
				errs = append(errs, fmt.Sprintf("subject %q has a subtopic with empty subtopicId", s.ID))
			}
			if subtopicIDs[st.ID] {
				errs = append(errs, fmt.Sprintf("duplicate subtopic ID: %q in subject %q", st.ID, s.ID))
			}
			subtopicIDs[st.ID] = true

			// Attempts are tracked per subtopic, so ids only need to be
			// unique within one.
			questionIDs := make(map[string]bool, len(st.Questions))
			for _, q := range st.Questions {
				if questionIDs[q.ID] {
					errs = append(errs, fmt.Sprintf("%s: duplicate question ID: %q", prefix, q.ID))
				}
				questionIDs[q.ID] = true

				switch q.Type {
				case TypeMCQ:
					if len(q.Options) < 2 {
						errs = append(errs, fmt.Sprintf("%s question %q: mcq needs at least 2 options, got %d", prefix, q.ID, len(q.Options)))
					}
					if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
						errs = append(errs, fmt.Sprintf("%s question %q: correctAnswer %d out of range", prefix, q.ID, q.CorrectAnswer))
					}
				case TypeWritten:
					if strings.TrimSpace(q.AnswerGuide) == "" {
						errs = append(errs, fmt.Sprintf("%s question %q: written question needs an answerGuide", prefix, q.ID))
					}
				default:
					errs = append(errs, fmt.Sprintf("%s question %q: unknown type %q", prefix, q.ID, q.Type))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
