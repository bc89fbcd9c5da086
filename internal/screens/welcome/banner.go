package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

const bannerArt = `
 ███████╗ █████╗      ██╗██╗  ██╗ █████╗      ██████╗ ██╗   ██╗ █████╗ ███╗   ██╗
 ██╔════╝██╔══██╗     ██║██║  ██║██╔══██╗    ██╔════╝ ╚██╗ ██╔╝██╔══██╗████╗  ██║
 ███████╗███████║     ██║███████║███████║    ██║  ███╗ ╚████╔╝ ███████║██╔██╗ ██║
 ╚════██║██╔══██║██   ██║██╔══██║██╔══██║    ██║   ██║  ╚██╔╝  ██╔══██║██║╚██╗██║
 ███████║██║  ██║╚█████╔╝██║  ██║██║  ██║    ╚██████╔╝   ██║   ██║  ██║██║ ╚████║
 ╚══════╝╚═╝  ╚═╝ ╚════╝ ╚═╝  ╚═╝╚═╝  ╚═╝     ╚═════╝    ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝`

const bannerCompact = "S A J H A   G Y A N"

// bannerMinWidth is the narrowest terminal that fits the block banner.
const bannerMinWidth = 84

// RenderBanner returns the banner styled in the primary color, falling back
// to spaced letters on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
