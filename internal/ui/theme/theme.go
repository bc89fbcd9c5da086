package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Subject colors from the catalog map onto these by name.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#10B981") // Emerald
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Info      = lipgloss.Color("#06B6D4") // Cyan
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

var subjectColors = map[string]color.Color{
	"blue":   lipgloss.Color("#3B82F6"),
	"green":  lipgloss.Color("#22C55E"),
	"orange": lipgloss.Color("#F97316"),
	"purple": lipgloss.Color("#8B5CF6"),
	"red":    lipgloss.Color("#EF4444"),
	"yellow": lipgloss.Color("#EAB308"),
	"teal":   lipgloss.Color("#14B8A6"),
	"pink":   lipgloss.Color("#EC4899"),
}

// SubjectColor resolves a catalog color name or hex code. Unknown names fall
// back to Primary.
func SubjectColor(name string) color.Color {
	if c, ok := subjectColors[name]; ok {
		return c
	}
	if len(name) == 7 && name[0] == '#' {
		return lipgloss.Color(name)
	}
	return Primary
}

// ScoreColor grades a percentage: green from 80, yellow from 60, red below.
func ScoreColor(percent int) color.Color {
	switch {
	case percent >= 80:
		return Success
	case percent >= 60:
		return Warning
	default:
		return Error
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Section = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
