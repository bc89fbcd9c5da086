package home

import (
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // default
	MascotCheering                      // last session scored 80% or more
	MascotWorried                       // the study plan has weak areas
)

const mascotIdle = ` ,___,
 (o,o)
 /)_)
  ""`

const mascotCheering = ` ,___,
 (^,^)  ✦
 /)_)\
  ""`

const mascotWorried = ` ,___,
 (o,o) ?
 /)_)
  ""`

// pickMascot chooses the variant for the dashboard. Weak areas win over a
// good last score.
func pickMascot(d dashboard) MascotVariant {
	switch {
	case d.WeakAreas > 0:
		return MascotWorried
	case d.HasLast && d.LastScore >= 80:
		return MascotCheering
	}
	return MascotIdle
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCheering:
		art, fg = mascotCheering, theme.Accent
	case MascotWorried:
		art, fg = mascotWorried, theme.Warning
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
