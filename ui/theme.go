package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kastheco/codex/ui/palette"
)

type gradientKey struct {
	text, start, end string
}

var (
	gradientMu    sync.Mutex
	gradientCache = map[gradientKey]string{}
)

// GradientText colours text column by column from start to end, blending in
// Luv space. Every line uses the same column ramp so block art stays aligned.
// Results are memoized per (text, start, end).
func GradientText(text, start, end string) string {
	key := gradientKey{text, start, end}
	gradientMu.Lock()
	if s, ok := gradientCache[key]; ok {
		gradientMu.Unlock()
		return s
	}
	gradientMu.Unlock()

	from, err1 := colorful.Hex(start)
	to, err2 := colorful.Hex(end)
	if err1 != nil || err2 != nil {
		return text
	}

	lines := strings.Split(text, "\n")
	width := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for col, r := range []rune(l) {
			if r == ' ' {
				b.WriteRune(r)
				continue
			}
			t := 0.0
			if width > 1 {
				t = float64(col) / float64(width-1)
			}
			c := from.BlendLuv(to, t).Clamped().Hex()
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r)))
		}
	}
	s := b.String()

	gradientMu.Lock()
	gradientCache[key] = s
	gradientMu.Unlock()
	return s
}

// PaletteGradient renders text with the current palette's gradient.
func PaletteGradient(text string) string {
	p := palette.Current()
	return GradientText(text, p.GradientStart, p.GradientEnd)
}
