package session

import (
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	sess "github.com/kasambhusal/sajha-gyan/internal/session"
)

// sessionInitMsg is sent when the question set has been drawn.
type sessionInitMsg struct {
	State *sess.SessionState
	Err   error
}

// sessionDoneMsg is sent once the summary has been appended to history.
type sessionDoneMsg struct {
	Summary *progress.TestSession
	Err     error
}

// timerTickMsg is sent every second to update the elapsed clock.
type timerTickMsg time.Time
