// Package session is the practice screen: one question at a time with
// feedback after each answer.
package session

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/screens/summary"
	sess "github.com/kasambhusal/sajha-gyan/internal/session"
	"github.com/kasambhusal/sajha-gyan/internal/ui/components"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
)

const writtenCharLimit = 500

// SessionScreen implements screen.Screen for an active practice session.
type SessionScreen struct {
	svc        *deps.Services
	subjectID  string
	subtopicID string

	state       *sess.SessionState
	choice      components.MultiChoice
	input       components.TextInput
	confirmQuit bool
	finishing   bool
	saveFailed  bool
	elapsed     time.Duration
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a practice screen for one subtopic. The question set is drawn
// in Init.
func New(svc *deps.Services, subjectID, subtopicID string) *SessionScreen {
	return &SessionScreen{
		svc:        svc,
		subjectID:  subjectID,
		subtopicID: subtopicID,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	svc, subjectID, subtopicID := s.svc, s.subjectID, s.subtopicID
	return func() tea.Msg {
		state, err := svc.Sessions.Start(context.Background(), subjectID, subtopicID)
		return sessionInitMsg{State: state, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	if s.state != nil {
		return s.state.Plan.Subtopic.Title
	}
	return "Practice"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.Phase == sess.PhaseFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	if q := s.state.CurrentQuestion(); q != nil && q.Type == questionbank.TypeMCQ {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-9", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.state == nil || s.finishing {
		return renderLoading(width, height, s.finishing)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width, height, s.state.Answered())
	}
	if s.state.Phase == sess.PhaseFeedback {
		return s.renderFeedback(width, height)
	}
	return s.renderQuestionView(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case sessionDoneMsg:
		return s.handleDone(msg)

	case timerTickMsg:
		// While finishing, Complete owns the state on the command goroutine.
		if s.state == nil || s.finishing || s.state.Phase == sess.PhaseSummary {
			return s, nil
		}
		s.elapsed = s.svc.Clock().Sub(s.state.StartTime)
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward everything else, such as cursor blinks, to the text input.
	if s.answeringWritten() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = describeStartError(msg.Err)
		s.svc.Logger().Warn("practice session not started", "subject", s.subjectID, "subtopic", s.subtopicID, "error", msg.Err)
		return s, nil
	}
	s.state = msg.State
	return s, tea.Batch(s.prepareQuestion(), tickCmd())
}

func describeStartError(err error) string {
	switch {
	case errors.Is(err, sess.ErrExhausted):
		return "You have attempted every question in this subtopic."
	case errors.Is(err, sess.ErrReferenceNotFound):
		return "This subject or subtopic is not in the catalog."
	case errors.Is(err, progress.ErrNotLoggedIn):
		return "Sign in to start practicing."
	}
	return err.Error()
}

// prepareQuestion resets the answer widgets for the current question.
func (s *SessionScreen) prepareQuestion() tea.Cmd {
	q := s.state.CurrentQuestion()
	if q == nil {
		return nil
	}
	if q.Type == questionbank.TypeMCQ {
		s.choice = components.NewMultiChoice(q.Options)
		return nil
	}
	s.input = components.NewTextInput("Write your answer...", writtenCharLimit)
	s.input.ShowCount = true
	return s.input.Init()
}

func (s *SessionScreen) answeringWritten() bool {
	if s.state == nil || s.confirmQuit || s.state.Phase != sess.PhaseActive {
		return false
	}
	q := s.state.CurrentQuestion()
	return q != nil && q.Type != questionbank.TypeMCQ
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil || s.finishing {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			// Answers already submitted stay in the ledger; no test is logged.
			s.confirmQuit = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.state.Phase {
	case sess.PhaseFeedback:
		return s.advance()

	case sess.PhaseActive:
		if key == "esc" {
			s.confirmQuit = true
			return s, nil
		}
		q := s.state.CurrentQuestion()
		if q == nil {
			return s, nil
		}
		if q.Type == questionbank.TypeMCQ {
			s.choice, _ = s.choice.Update(msg)
			if s.choice.Submitted {
				return s.submit(sess.Choose(s.choice.ChosenIndex))
			}
			return s, nil
		}
		if key == "enter" {
			if s.input.Blank() {
				return s, nil
			}
			return s.submit(sess.Write(s.input.Value()))
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit grades and records the answer, then shows feedback.
func (s *SessionScreen) submit(ans sess.Answer) (screen.Screen, tea.Cmd) {
	q := s.state.CurrentQuestion()
	correct, err := s.svc.Sessions.Submit(context.Background(), s.state, ans)
	if errors.Is(err, sess.ErrNotAnswerable) {
		return s, nil
	}
	s.saveFailed = err != nil

	if q.Type == questionbank.TypeMCQ {
		s.choice.Reveal(q.CorrectAnswer)
	} else {
		s.input.Submit(correct)
		s.input.Blur()
	}
	return s, nil
}

// advance leaves the feedback view for the next question or the summary.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if s.svc.Sessions.Next(s.state) {
		s.saveFailed = false
		return s, s.prepareQuestion()
	}
	s.finishing = true
	svc, state := s.svc, s.state
	return s, func() tea.Msg {
		summary, err := svc.Sessions.Complete(context.Background(), state)
		return sessionDoneMsg{Summary: summary, Err: err}
	}
}

func (s *SessionScreen) handleDone(msg sessionDoneMsg) (screen.Screen, tea.Cmd) {
	s.finishing = false
	if msg.Summary == nil {
		s.errMsg = "Could not finish the session: " + msg.Err.Error()
		return s, nil
	}
	if msg.Err != nil {
		s.svc.Logger().Warn("session summary saved partially", "error", msg.Err)
	}
	next := summary.New(s.svc, msg.Summary, msg.Err != nil)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// HandlesBack reports whether Esc should open the quit dialog rather than
// leave the screen.
func (s *SessionScreen) HandlesBack() bool {
	return s.state != nil && s.errMsg == "" && !s.finishing
}
