// Package app hosts the Bubble Tea program: the screen router plus the
// header and footer chrome around it.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/router"
	"github.com/kasambhusal/sajha-gyan/internal/screen"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/screens/home"
	"github.com/kasambhusal/sajha-gyan/internal/screens/login"
	"github.com/kasambhusal/sajha-gyan/internal/screens/welcome"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
	"github.com/kasambhusal/sajha-gyan/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    *deps.Services
	router *router.Router
	header layout.HeaderInfo
	width  int
	height int
}

// newAppModel starts on the home screen when a learner is already signed
// in, and on the welcome splash otherwise.
func newAppModel(svc *deps.Services, skipWelcome bool) AppModel {
	var first screen.Screen
	switch {
	case svc.Repo.Profile(context.Background()) != nil:
		first = homeScreen(svc)
	case skipWelcome:
		first = loginScreen(svc)
	default:
		first = welcome.New(func() screen.Screen { return loginScreen(svc) })
	}
	m := AppModel{svc: svc, router: router.New(first)}
	m.header = headerInfo(svc)
	return m
}

func homeScreen(svc *deps.Services) screen.Screen {
	return home.New(svc, func() screen.Screen { return loginScreen(svc) })
}

func loginScreen(svc *deps.Services) screen.Screen {
	return login.New(svc, func(*progress.Profile) screen.Screen { return homeScreen(svc) })
}

// headerInfo reads the learner summary for the header bar.
func headerInfo(svc *deps.Services) layout.HeaderInfo {
	p := svc.Repo.Profile(context.Background())
	if p == nil {
		return layout.HeaderInfo{}
	}
	return layout.HeaderInfo{
		Student:  p.Name,
		Tests:    p.TotalTests,
		Accuracy: studyplan.Percent(p.Accuracy()),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if cmd, handled := m.router.Back(); handled {
				return m, cmd
			}
		}
	}

	cmd := m.router.Update(msg)

	// Navigation is when counters can have changed.
	if router.IsNavigation(msg) {
		m.header = headerInfo(m.svc)
	}
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(breadcrumb(m.router.Trail()), m.header, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Options tune how the program starts.
type Options struct {
	// SkipWelcome goes straight to the sign-in form when nobody is signed in.
	SkipWelcome bool
}

// Run starts the Bubble Tea program.
func Run(svc *deps.Services, opts Options) error {
	p := tea.NewProgram(newAppModel(svc, opts.SkipWelcome))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// breadcrumb joins the last few screen titles for the header.
func breadcrumb(trail []string) string {
	const keep = 3
	if len(trail) > keep {
		trail = append([]string{"…"}, trail[len(trail)-keep:]...)
	}
	return strings.Join(trail, " › ")
}
