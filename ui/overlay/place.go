package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kastheco/codex/ui/palette"
)

const resetStyle = "\x1b[0m"

// PlaceOverlay draws fg on top of bg with its top-left corner at (x, y).
// When center is set, x and y are ignored and fg is centred on bg. A shadow
// adds a one-cell drop shadow to the right and below fg.
func PlaceOverlay(x, y int, fg, bg string, shadow, center bool) string {
	if shadow {
		fg = addShadow(fg)
	}
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	fgHeight, bgHeight := len(fgLines), len(bgLines)

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return fg
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = clampInt(x, 0, max(0, bgWidth-fgWidth))
	y = clampInt(y, 0, max(0, bgHeight-fgHeight))

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		fgLine := fgLines[i-y]
		if w := ansi.StringWidth(fgLine); w < fgWidth {
			fgLine += strings.Repeat(" ", fgWidth-w)
		}
		right := ansi.TruncateLeft(bgLine, x+fgWidth, "")

		b.WriteString(left)
		b.WriteString(resetStyle)
		b.WriteString(fgLine)
		b.WriteString(resetStyle)
		b.WriteString(right)
	}
	return b.String()
}

func getLines(s string) ([]string, int) {
	lines := strings.Split(s, "\n")
	width := 0
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > width {
			width = w
		}
	}
	return lines, width
}

func addShadow(s string) string {
	lines, width := getLines(s)
	shade := lipgloss.NewStyle().Foreground(palette.Current().Overlay)
	out := make([]string, 0, len(lines)+1)
	for i, l := range lines {
		if w := ansi.StringWidth(l); w < width {
			l += strings.Repeat(" ", width-w)
		}
		if i == 0 {
			out = append(out, l+" ")
		} else {
			out = append(out, l+shade.Render("░"))
		}
	}
	out = append(out, " "+shade.Render(strings.Repeat("░", width)))
	return strings.Join(out, "\n")
}
