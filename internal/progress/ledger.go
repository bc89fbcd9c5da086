package progress

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Progress is the attempt ledger. Subjects and subtopics keep the order in
// which they were first attempted, and that order survives JSON round trips.
type Progress struct {
	StudentID    string
	Subjects     []SubjectProgress
	LastActivity time.Time
}

// SubjectProgress is one subject's subtopics in first-attempt order.
type SubjectProgress struct {
	ID        string
	Subtopics []SubtopicProgress
}

// SubtopicProgress pairs a subtopic id with its stats.
type SubtopicProgress struct {
	ID   string
	Stat SubtopicStat
}

// Entry is a flattened (subject, subtopic, stat) view of the ledger.
type Entry struct {
	SubjectID  string
	SubtopicID string
	Stat       SubtopicStat
}

// NewProgress returns an empty ledger.
func NewProgress(studentID string, now time.Time) *Progress {
	return &Progress{StudentID: studentID, LastActivity: now}
}

// Subject returns the subject's entry if it has any attempts.
func (p *Progress) Subject(subjectID string) (SubjectProgress, bool) {
	for _, s := range p.Subjects {
		if s.ID == subjectID {
			return s, true
		}
	}
	return SubjectProgress{}, false
}

// Stat returns the stats for a subtopic if it has an entry.
func (p *Progress) Stat(subjectID, subtopicID string) (SubtopicStat, bool) {
	if st := p.find(subjectID, subtopicID); st != nil {
		return *st, true
	}
	return SubtopicStat{}, false
}

func (p *Progress) find(subjectID, subtopicID string) *SubtopicStat {
	for i := range p.Subjects {
		if p.Subjects[i].ID != subjectID {
			continue
		}
		for j := range p.Subjects[i].Subtopics {
			if p.Subjects[i].Subtopics[j].ID == subtopicID {
				return &p.Subjects[i].Subtopics[j].Stat
			}
		}
		return nil
	}
	return nil
}

// ensure returns the subtopic's stats, creating zeroed entries for the
// subject and subtopic on first use.
func (p *Progress) ensure(subjectID, subtopicID string) *SubtopicStat {
	if st := p.find(subjectID, subtopicID); st != nil {
		return st
	}
	si := -1
	for i := range p.Subjects {
		if p.Subjects[i].ID == subjectID {
			si = i
			break
		}
	}
	if si < 0 {
		p.Subjects = append(p.Subjects, SubjectProgress{ID: subjectID})
		si = len(p.Subjects) - 1
	}
	subj := &p.Subjects[si]
	subj.Subtopics = append(subj.Subtopics, SubtopicProgress{
		ID:   subtopicID,
		Stat: SubtopicStat{History: []AttemptRecord{}},
	})
	return &subj.Subtopics[len(subj.Subtopics)-1].Stat
}

// Record appends one attempt and refreshes the derived fields. A negative
// timeTaken is clamped to zero.
func (p *Progress) Record(subjectID, subtopicID, questionID string, correct bool, timeTaken int64, now time.Time) SubtopicStat {
	if timeTaken < 0 {
		timeTaken = 0
	}
	st := p.ensure(subjectID, subtopicID)

	result := ResultIncorrect
	if correct {
		result = ResultCorrect
		st.Correct++
	}
	st.History = append(st.History, AttemptRecord{
		QuestionID: questionID,
		Result:     result,
		Timestamp:  now.UnixMilli(),
		TimeTaken:  timeTaken,
	})
	st.Attempted++
	st.AverageTime = float64(st.TotalTime()) / float64(len(st.History))

	at := now
	st.LastAttempt = &at
	p.LastActivity = now
	return *st
}

// Entries flattens the ledger in insertion order.
func (p *Progress) Entries() []Entry {
	var out []Entry
	for _, s := range p.Subjects {
		for _, st := range s.Subtopics {
			out = append(out, Entry{SubjectID: s.ID, SubtopicID: st.ID, Stat: st.Stat})
		}
	}
	return out
}

// AttemptedQuestions returns the distinct question ids attempted in a
// subtopic, or across the whole subject when subtopicID is empty.
func (p *Progress) AttemptedQuestions(subjectID, subtopicID string) []string {
	subj, ok := p.Subject(subjectID)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var ids []string
	for _, st := range subj.Subtopics {
		if subtopicID != "" && st.ID != subtopicID {
			continue
		}
		for _, h := range st.Stat.History {
			if !seen[h.QuestionID] {
				seen[h.QuestionID] = true
				ids = append(ids, h.QuestionID)
			}
		}
	}
	return ids
}

// Totals sums attempts, correct answers and time across the ledger.
func (p *Progress) Totals() (attempted, correct int, totalTime int64) {
	for _, e := range p.Entries() {
		attempted += e.Stat.Attempted
		correct += e.Stat.Correct
		totalTime += e.Stat.TotalTime()
	}
	return attempted, correct, totalTime
}

// MarshalJSON writes subjects and subtopics as JSON objects in ledger order.
func (p Progress) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"studentId":`)
	if err := writeValue(&buf, p.StudentID); err != nil {
		return nil, err
	}
	buf.WriteString(`,"subjects":{`)
	for i, s := range p.Subjects {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(&buf, s.ID); err != nil {
			return nil, err
		}
		buf.WriteString(`:{`)
		for j, st := range s.Subtopics {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(&buf, st.ID); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			stat := st.Stat
			if stat.History == nil {
				stat.History = []AttemptRecord{}
			}
			if err := writeValue(&buf, stat); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteString(`},"lastActivity":`)
	if err := writeValue(&buf, p.LastActivity); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// UnmarshalJSON reads the ledger with gjson so object key order is kept.
func (p *Progress) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("progress: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return errors.New("progress: expected object")
	}

	out := Progress{StudentID: root.Get("studentId").String()}
	if la := root.Get("lastActivity"); la.Type == gjson.String {
		if t, err := time.Parse(time.RFC3339Nano, la.String()); err == nil {
			out.LastActivity = t
		}
	}

	// ForEach visits a scalar once under an empty key, so anything that is
	// not an object is skipped.
	var decodeErr error
	subjects := root.Get("subjects")
	if !subjects.IsObject() {
		subjects = gjson.Result{}
	}
	subjects.ForEach(func(subjectKey, subject gjson.Result) bool {
		if !subject.IsObject() {
			return true
		}
		sp := SubjectProgress{ID: subjectKey.String()}
		subject.ForEach(func(subtopicKey, raw gjson.Result) bool {
			if !raw.IsObject() {
				return true
			}
			var stat SubtopicStat
			if err := json.Unmarshal([]byte(raw.Raw), &stat); err != nil {
				decodeErr = fmt.Errorf("progress: subtopic %s/%s: %w", sp.ID, subtopicKey.String(), err)
				return false
			}
			if stat.History == nil {
				stat.History = []AttemptRecord{}
			}
			sp.Subtopics = append(sp.Subtopics, SubtopicProgress{ID: subtopicKey.String(), Stat: stat})
			return true
		})
		if decodeErr != nil {
			return false
		}
		out.Subjects = append(out.Subjects, sp)
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}

	*p = out
	return nil
}
