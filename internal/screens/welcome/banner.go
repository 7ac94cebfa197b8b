package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

const bannerArt = `
                ███████╗██╗      ██████╗ ██████╗ ███████╗
                ██╔════╝██║     ██╔═══██╗██╔══██╗██╔════╝
                ███████╗██║     ██║   ██║██████╔╝█████╗
                ╚════██║██║     ██║   ██║██╔═══╝ ██╔══╝
                ███████║███████╗╚██████╔╝██║     ███████╗
                ╚══════╝╚══════╝ ╚═════╝ ╚═╝     ╚══════╝

 ███████╗██╗  ██╗ ██████╗ ██╗    ██╗██████╗  ██████╗ ██╗    ██╗███╗   ██╗
 ██╔════╝██║  ██║██╔═══██╗██║    ██║██╔══██╗██╔═══██╗██║    ██║████╗  ██║
 ███████╗███████║██║   ██║██║ █╗ ██║██║  ██║██║   ██║██║ █╗ ██║██╔██╗ ██║
 ╚════██║██╔══██║██║   ██║██║███╗██║██║  ██║██║   ██║██║███╗██║██║╚██╗██║
 ███████║██║  ██║╚██████╔╝╚███╔███╔╝██████╔╝╚██████╔╝╚███╔███╔╝██║ ╚████║
 ╚══════╝╚═╝  ╚═╝ ╚═════╝  ╚══╝╚══╝ ╚═════╝  ╚═════╝  ╚══╝╚══╝ ╚═╝  ╚═══╝`

const bannerCompact = "S L O P E   S H O W D O W N"

// bannerMinWidth is the narrowest terminal that fits the block-letter art.
const bannerMinWidth = 76

// bannerMinHeight leaves room for the art plus the slope sweep and tagline.
const bannerMinHeight = 26

// RenderBanner returns the title banner styled in the primary color,
// falling back to spaced capitals on small terminals.
func RenderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth || height < bannerMinHeight {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
