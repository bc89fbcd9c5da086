package questionbank

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotFound is returned when a subject, subtopic or question id does not
// resolve against the catalog.
var ErrNotFound = errors.New("not found in question bank")

type subtopicKey struct {
	subject  string
	subtopic string
}

type questionKey struct {
	subtopicKey
	question string
}

// Bank is a read-only, validated catalog with lookup indices. It is loaded
// once and shared; nothing mutates it after construction.
type Bank struct {
	subjects   []Subject
	bySubject  map[string]int
	bySubtopic map[subtopicKey][2]int
	byQuestion map[questionKey]*Question
}

// New validates subjects and builds the lookup indices.
func New(subjects []Subject) (*Bank, error) {
	if err := validateSubjects(subjects); err != nil {
		return nil, err
	}

	b := &Bank{
		subjects:   subjects,
		bySubject:  make(map[string]int, len(subjects)),
		bySubtopic: make(map[subtopicKey][2]int),
		byQuestion: make(map[questionKey]*Question),
	}
	for i := range b.subjects {
		s := &b.subjects[i]
		b.bySubject[s.ID] = i
		for j := range s.Subtopics {
			st := &s.Subtopics[j]
			b.bySubtopic[subtopicKey{s.ID, st.ID}] = [2]int{i, j}
			for k := range st.Questions {
				b.byQuestion[questionKey{subtopicKey{s.ID, st.ID}, st.Questions[k].ID}] = &st.Questions[k]
			}
		}
	}
	return b, nil
}

// Subjects returns all subjects in catalog order.
func (b *Bank) Subjects() []Subject {
	return slices.Clone(b.subjects)
}

// Subject returns a subject by id.
func (b *Bank) Subject(id string) (Subject, error) {
	i, ok := b.bySubject[id]
	if !ok {
		return Subject{}, fmt.Errorf("subject %q: %w", id, ErrNotFound)
	}
	return b.subjects[i], nil
}

// Subtopic returns a subtopic by subject and subtopic id.
func (b *Bank) Subtopic(subjectID, subtopicID string) (Subtopic, error) {
	idx, ok := b.bySubtopic[subtopicKey{subjectID, subtopicID}]
	if !ok {
		if _, err := b.Subject(subjectID); err != nil {
			return Subtopic{}, err
		}
		return Subtopic{}, fmt.Errorf("subtopic %q in subject %q: %w", subtopicID, subjectID, ErrNotFound)
	}
	return b.subjects[idx[0]].Subtopics[idx[1]], nil
}

// Question returns a question by id. Ids are scoped to their subtopic.
func (b *Bank) Question(subjectID, subtopicID, id string) (Question, error) {
	q, ok := b.byQuestion[questionKey{subtopicKey{subjectID, subtopicID}, id}]
	if !ok {
		return Question{}, fmt.Errorf("question %q in %s/%s: %w", id, subjectID, subtopicID, ErrNotFound)
	}
	return *q, nil
}

// SubjectTitle returns the subject's display title, or the id itself when
// the subject is unknown (e.g. history recorded against an older catalog).
func (b *Bank) SubjectTitle(id string) string {
	if s, err := b.Subject(id); err == nil {
		return s.Title
	}
	return id
}

// SubtopicTitle is the subtopic counterpart of SubjectTitle.
func (b *Bank) SubtopicTitle(subjectID, subtopicID string) string {
	if st, err := b.Subtopic(subjectID, subtopicID); err == nil {
		return st.Title
	}
	return subtopicID
}
