package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one menu entry. Key, when set, is a shortcut that selects
// and triggers the item in one press.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks the selection over a vertical list of items. Screens draw it
// themselves from Labels and Selected.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step moves to the next enabled item in direction dir, wrapping around.
func (m *Menu) step(dir int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
}

func (m Menu) trigger(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	if item := m.Items[i]; !item.Disabled && item.Action != nil {
		return item.Action()
	}
	return nil
}

// Update moves the selection with the arrow keys and runs the chosen
// item's Action on Enter or on its shortcut key.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case "enter":
		return m, m.trigger(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == k && !item.Disabled {
				m.Selected = i
				return m, m.trigger(i)
			}
		}
	}
	return m, nil
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	out := make([]string, len(m.Items))
	for i, item := range m.Items {
		out[i] = item.Label
	}
	return out
}
