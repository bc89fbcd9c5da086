package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/screens/history"
	"github.com/kasambhusal/sajha-gyan/internal/screens/plan"
	"github.com/kasambhusal/sajha-gyan/internal/screens/stats"
	"github.com/kasambhusal/sajha-gyan/internal/screens/subjects"
	"github.com/kasambhusal/sajha-gyan/internal/ui/components"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
)

type signedOutMsg struct {
	Err error
}

// HomeScreen is the signed-in dashboard and main menu.
type HomeScreen struct {
	svc       *deps.Services
	signedOut func() screen.Screen
	menu      components.Menu
	dash      dashboard
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. signedOut builds the screen shown after
// the learner signs out.
func New(svc *deps.Services, signedOut func() screen.Screen) *HomeScreen {
	h := &HomeScreen{svc: svc, signedOut: signedOut}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Key: "p", Action: push(func() screen.Screen { return subjects.New(svc) })},
		{Label: "STUDY PLAN", Key: "s", Action: push(func() screen.Screen { return plan.New(svc) })},
		{Label: "MY PROGRESS", Key: "m", Action: push(func() screen.Screen { return stats.New(svc) })},
		{Label: "HISTORY", Key: "h", Action: push(func() screen.Screen { return history.New(svc) })},
		{Label: "SIGN OUT", Action: h.signOut},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	h.dash = loadDashboard(context.Background(), svc)
	return h
}

func (h *HomeScreen) signOut() tea.Cmd {
	repo := h.svc.Repo
	return func() tea.Msg {
		return signedOutMsg{Err: repo.Logout(context.Background())}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		h.dash = loadDashboard(context.Background(), h.svc)
		return h, nil
	case signedOutMsg:
		if msg.Err != nil {
			h.svc.Logger().Warn("sign out left data behind", "error", msg.Err)
		}
		next := h.signedOut()
		return h, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, layout.Center(cw, RenderMascot(pickMascot(h.dash))))
	}
	sections = append(sections, renderGreeting(h.dash.Name, cw))
	sections = append(sections, renderStatsBar(h.dash, cw, compact))
	if note := renderWeakNote(h.dash.WeakAreas, cw); note != "" {
		sections = append(sections, note)
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menu.Labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menu.Labels(), h.menu.Selected, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
