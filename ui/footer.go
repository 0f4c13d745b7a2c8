package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kastheco/codex/ui/palette"
)

const (
	FooterHeadline = "Execute Now."
	FooterBlurb    = "Strategic AI frameworks refreshed weekly for verified network members. Join the architecture of growth."
)

// FooterCallToAction is the footer prompt for the session state.
func FooterCallToAction(authenticated bool) string {
	if authenticated {
		return "CONNECTED"
	}
	return "INITIALIZE PROTOCOL →"
}

// Copyright returns the footer copyright line for year.
func Copyright(year int) string {
	return fmt.Sprintf("© %d Codex Suite / Architecture of Growth", year)
}

// Footer renders the closing block under the grid. The call to action shares
// the auth zone with the status bar.
func Footer(width int, authenticated bool, year int) string {
	p := palette.Current()
	headline := lipgloss.NewStyle().Foreground(p.Text).Bold(true).Render(FooterHeadline)
	ctaStyle := lipgloss.NewStyle().Foreground(p.Subtle).Bold(true).Underline(true)
	if authenticated {
		ctaStyle = ctaStyle.Foreground(p.Foam)
	}
	cta := ctaStyle.Render(FooterCallToAction(authenticated))
	if !authenticated {
		cta = zone.Mark(ZoneAuth, cta)
	}
	blurb := lipgloss.NewStyle().Foreground(p.Muted).Width(min(width, 72)).Render(FooterBlurb)
	copyright := lipgloss.NewStyle().Foreground(p.Overlay).Render(Copyright(year))

	block := lipgloss.JoinVertical(lipgloss.Left, headline+"  "+cta, blurb, "", copyright)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay).
		Width(width).
		Padding(1, 2).
		Render(block)
}
