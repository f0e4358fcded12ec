package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

const bannerArt = `
 ▄▀█ █▀▄ ▄▀█ █▀█ ▀█▀ █ █▀█ █ █ █ ▀█
 █▀█ █▄▀ █▀█ █▀▀  █  █ ▀▀█ █▄█ █ █▄`

const bannerCompact = "A D A P T I Q U I Z"

// RenderBanner returns the banner styled in the primary color, or the
// compact form on terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
