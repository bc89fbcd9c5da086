// Package router keeps the stack of open screens and turns navigation
// messages into stack operations.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/kasambhusal/sajha-gyan/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ResumedMsg tells a screen it is on top again, so it can reload data the
// screen above may have changed.
type ResumedMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen, e.g. a finished
// practice session for its results.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg clears the stack down to Screen. Sign-in and sign-out use it.
type ResetScreenMsg struct {
	Screen screen.Screen
}

// IsNavigation reports whether msg changes the stack.
func IsNavigation(msg tea.Msg) bool {
	switch msg.(type) {
	case PushScreenMsg, PopScreenMsg, ReplaceScreenMsg, ResetScreenMsg:
		return true
	}
	return false
}

// Router is the screen stack. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New starts a stack with root at the bottom.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen and resumes the one below. It returns nil at
// the bottom of the stack.
func (r *Router) Pop() tea.Cmd {
	if r.Depth() <= 1 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	return func() tea.Msg { return ResumedMsg{} }
}

// Replace swaps the top screen for s.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if r.Depth() == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Reset drops every screen and starts again from s.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	clear(r.stack)
	r.stack = append(r.stack[:0], s)
	return s.Init()
}

// Back handles Esc: the active screen keeps the key if it is a
// screen.BackHandler that wants it, otherwise the top screen is popped.
// The returned bool reports whether Esc was consumed by navigation.
func (r *Router) Back() (tea.Cmd, bool) {
	if bh, ok := r.Active().(screen.BackHandler); ok && bh.HandlesBack() {
		return nil, false
	}
	if r.Depth() <= 1 {
		return nil, true
	}
	return func() tea.Msg { return PopScreenMsg{} }, true
}

// Active returns the top screen, or nil for an empty stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns how many screens are open.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Trail lists the non-empty titles from the bottom of the stack up.
func (r *Router) Trail() []string {
	var out []string
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		return r.Reset(msg.Screen)
	}

	if r.Depth() == 0 {
		return nil
	}
	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View draws the active screen into a width x height area.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
