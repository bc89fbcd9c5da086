package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// Button is an inline form action such as the sign-in submit. The owning
// screen moves focus onto it and asks Pressed what a key did.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// NewButton creates an unfocused, enabled button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// Pressed reports whether msg activates the button: Enter or Space while it
// is focused and enabled.
func (b Button) Pressed(msg tea.Msg) bool {
	if !b.Focused || b.Disabled {
		return false
	}
	k, ok := msg.(tea.KeyMsg)
	return ok && (k.String() == "enter" || k.String() == "space")
}

// View renders the button. Only a focused button carries the cursor.
func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(b.Label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
