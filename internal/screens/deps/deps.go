// Package deps bundles the services the TUI screens share.
package deps

import (
	"time"

	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
	"github.com/kasambhusal/sajha-gyan/internal/session"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
)

// Services is handed to every screen constructor.
type Services struct {
	Repo     *progress.Repo
	Bank     *questionbank.Bank
	Sessions *session.Service
	Plans    *studyplan.Engine
	Log      *logger.Logger

	// ReportDir is where exported progress reports are written. Empty means
	// the working directory.
	ReportDir string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Clock returns the current time from Now.
func (s *Services) Clock() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Logger returns Log, or a no-op logger when none is set.
func (s *Services) Logger() *logger.Logger {
	if s.Log == nil {
		return logger.Nop()
	}
	return s.Log
}
