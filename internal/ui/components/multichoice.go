package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It knows nothing about the
// right answer until Reveal is called.
type MultiChoice struct {
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int

	revealed     bool
	correctIndex int
}

// NewMultiChoice creates a multiple-choice selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:     options,
		ChosenIndex: -1,
	}
}

// Update handles arrow navigation, number shortcuts and Enter. A shortcut
// selects and submits in one step.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.submit(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.submit(i)
			}
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(i int) {
	if len(m.Options) == 0 {
		return
	}
	m.Submitted = true
	m.ChosenIndex = i
}

// Reveal marks the correct option for the feedback rendering.
func (m *MultiChoice) Reveal(correct int) {
	m.revealed = true
	m.correctIndex = correct
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, optionLabel(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.revealed && i == m.correctIndex:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			style = style.Foreground(theme.Error).Bold(true)
			if !m.revealed {
				style = style.Foreground(theme.Primary)
			}
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}
	return s
}

func optionLabel(i int) rune {
	if i < 26 {
		return rune('A' + i)
	}
	return '?'
}
