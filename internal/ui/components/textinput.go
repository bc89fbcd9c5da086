package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// TextInput is a single-line answer or form field. After Submit it is
// frozen and shows whether the answer was accepted.
type TextInput struct {
	Model textinput.Model

	// ShowCount adds a "n/limit" character counter under the field.
	ShowCount bool

	submitted bool
	accepted  bool
}

// NewTextInput creates a focused text input. charLimit <= 0 means no limit.
func NewTextInput(placeholder string, charLimit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if charLimit > 0 {
		m.CharLimit = charLimit
	}
	m.Focus()
	return TextInput{Model: m}
}

// Init starts the cursor blink.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards msg to the field unless it has been submitted.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.submitted {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the field, the accepted mark and the optional counter.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		mark := lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		if t.accepted {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		}
		view += " " + mark
	}
	if t.ShowCount && t.Model.CharLimit > 0 {
		n := utf8.RuneCountInString(t.Model.Value())
		view += "\n" + theme.Hint.Render(fmt.Sprintf("%d/%d", n, t.Model.CharLimit))
	}
	return view
}

// Value returns the raw text.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Blank reports whether the text is empty after trimming.
func (t TextInput) Blank() bool {
	return strings.TrimSpace(t.Model.Value()) == ""
}

// Focus focuses the field.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the field.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Submit freezes the field and records whether the answer was accepted.
func (t *TextInput) Submit(accepted bool) {
	t.submitted = true
	t.accepted = accepted
}
