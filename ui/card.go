package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/ui/palette"
)

const (
	// CardHeight is the full card height including its border.
	CardHeight = 8
	// MinCardWidth is the narrowest card the grid lays out.
	MinCardWidth = 34
	// MaxColumns caps the grid width.
	MaxColumns = 3

	descLines = 2
)

// ModuleLabel is the index label shown in a card corner.
func ModuleLabel(idx int) string {
	return fmt.Sprintf("MOD_0%d", idx+1)
}

// clampLines wraps s to width and keeps at most n lines, marking a cut with
// an ellipsis.
func clampLines(s string, width, n int) []string {
	if width <= 0 {
		return nil
	}
	lines := strings.Split(wordwrap.String(s, width), "\n")
	for i, l := range lines {
		if runewidth.StringWidth(l) > width {
			lines[i] = runewidth.Truncate(l, width, "…")
		}
	}
	if len(lines) <= n {
		return lines
	}
	lines = lines[:n]
	last := lines[n-1]
	if runewidth.StringWidth(last)+1 > width {
		last = runewidth.Truncate(last, width-1, "")
	}
	lines[n-1] = last + "…"
	return lines
}

// renderCard draws one module card. unlocked mirrors the session state;
// selected draws the accent border.
func renderCard(it catalog.Item, idx, width int, unlocked, selected bool) string {
	p := palette.Current()

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(0, 1).
		Width(width - 2).
		Height(CardHeight - 2)
	if selected {
		style = style.BorderForeground(p.Accent)
	}
	inner := width - style.GetHorizontalFrameSize()

	// Status row: dot + state on the left, lock or arrow on the right.
	dotColor, state, glyph := p.Accent, "SECURED", Icon("lock")
	if unlocked {
		dotColor, state, glyph = p.Foam, "UNLOCKED", Icon("external")
	}
	left := lipgloss.NewStyle().Foreground(dotColor).Render("●") + " " +
		lipgloss.NewStyle().Foreground(p.Muted).Render(state)
	glyphStyle := lipgloss.NewStyle().Foreground(p.Muted)
	if selected {
		glyphStyle = glyphStyle.Foreground(p.Accent)
	}
	right := glyphStyle.Render(glyph)
	gap := max(1, inner-lipgloss.Width(left)-lipgloss.Width(right))
	status := left + strings.Repeat(" ", gap) + right

	iconStyle := lipgloss.NewStyle().Foreground(p.Text)
	if !unlocked {
		iconStyle = iconStyle.Foreground(p.Muted)
	}
	if unlocked && selected {
		iconStyle = iconStyle.Foreground(p.Accent)
	}
	label := lipgloss.NewStyle().Foreground(p.Overlay).Render(ModuleLabel(idx))
	iconRow := iconStyle.Render(Icon(it.Icon)) + strings.Repeat(" ", max(1, inner-2-lipgloss.Width(label))) + label

	nameStyle := lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	if !unlocked {
		nameStyle = nameStyle.Foreground(p.Subtle)
	}
	if unlocked && selected {
		nameStyle = nameStyle.Foreground(p.Accent)
	}
	name := nameStyle.Render(runewidth.Truncate(it.Name, inner, "…"))

	descStyle := lipgloss.NewStyle().Foreground(p.Muted)
	rows := []string{status, "", iconRow, name}
	for _, l := range clampLines(it.Description, inner, descLines) {
		rows = append(rows, descStyle.Render(l))
	}

	return style.Render(strings.Join(rows, "\n"))
}
