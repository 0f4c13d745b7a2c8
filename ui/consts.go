package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kastheco/codex/ui/palette"
)

// The CODEX banner, 6 rows tall.
var bannerRaw = ` ██████╗ ██████╗ ██████╗ ███████╗██╗  ██╗
██╔════╝██╔═══██╗██╔══██╗██╔════╝╚██╗██╔╝
██║     ██║   ██║██║  ██║█████╗   ╚███╔╝
██║     ██║   ██║██║  ██║██╔══╝   ██╔██╗
╚██████╗╚██████╔╝██████╔╝███████╗██╔╝ ██╗
 ╚═════╝ ╚═════╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝`

const (
	compactBanner = "C O D E X"

	Tagline     = "Architect Excellence."
	Subtitle    = "Precision AI frameworks designed to restructure and automate the modern enterprise lifecycle."
	SearchHint  = "SEARCH PROTOCOL ^K"
	BannerLines = 6
)

// bannerWidth is the widest row of the block banner.
var bannerWidth = func() int {
	w := 0
	for _, l := range strings.Split(bannerRaw, "\n") {
		if n := lipgloss.Width(l); n > w {
			w = n
		}
	}
	return w
}()

// Banner renders the gradient banner when it fits in width, otherwise the
// compact one-line form.
func Banner(width int) string {
	if width < bannerWidth {
		return PaletteGradient(compactBanner)
	}
	return PaletteGradient(bannerRaw)
}

// Hero renders the banner, tagline, subtitle and search hint centred in width.
func Hero(width int) string {
	p := palette.Current()
	tagline := lipgloss.NewStyle().Foreground(p.Text).Bold(true).Render(Tagline)
	subtitle := lipgloss.NewStyle().
		Foreground(p.Subtle).
		Width(min(width, 72)).
		Align(lipgloss.Center).
		Render(Subtitle)
	hint := lipgloss.NewStyle().Foreground(p.Accent).Render(Icon("search")) + " " +
		lipgloss.NewStyle().Foreground(p.Muted).Render(SearchHint)
	hint = zone.Mark(ZoneSearch, hint)

	block := lipgloss.JoinVertical(lipgloss.Center, Banner(width), "", tagline, subtitle, "", hint)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
