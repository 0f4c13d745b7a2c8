// Package palette holds the two colour schemes and the one currently in use.
// Rosé Pine Moon is the dark theme and Rosé Pine Dawn the light one.
// https://rosepinetheme.com/palette/
package palette

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kastheco/codex/config"
)

// Palette is a full set of theme colours.
type Palette struct {
	Name string

	// Base tones
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color
	Muted   lipgloss.Color
	Subtle  lipgloss.Color
	Text    lipgloss.Color

	// Semantic colors
	Love lipgloss.Color // error, danger
	Gold lipgloss.Color // warning
	Rose lipgloss.Color // accent, secondary
	Pine lipgloss.Color // link
	Foam lipgloss.Color // info, unlocked
	Iris lipgloss.Color // highlight, primary

	// Accent is the brand red used for the active tab, locks and the search glyph.
	Accent lipgloss.Color

	// Gradient endpoints for the banner
	GradientStart string
	GradientEnd   string
}

var Moon = Palette{
	Name:          "moon",
	Base:          lipgloss.Color("#232136"),
	Surface:       lipgloss.Color("#2a273f"),
	Overlay:       lipgloss.Color("#393552"),
	Muted:         lipgloss.Color("#6e6a86"),
	Subtle:        lipgloss.Color("#908caa"),
	Text:          lipgloss.Color("#e0def4"),
	Love:          lipgloss.Color("#eb6f92"),
	Gold:          lipgloss.Color("#f6c177"),
	Rose:          lipgloss.Color("#ea9a97"),
	Pine:          lipgloss.Color("#3e8fb0"),
	Foam:          lipgloss.Color("#9ccfd8"),
	Iris:          lipgloss.Color("#c4a7e7"),
	Accent:        lipgloss.Color("#e0503f"),
	GradientStart: "#ea9a97", // rose
	GradientEnd:   "#e0503f", // accent
}

var Dawn = Palette{
	Name:          "dawn",
	Base:          lipgloss.Color("#faf4ed"),
	Surface:       lipgloss.Color("#fffaf3"),
	Overlay:       lipgloss.Color("#f2e9e1"),
	Muted:         lipgloss.Color("#9893a5"),
	Subtle:        lipgloss.Color("#797593"),
	Text:          lipgloss.Color("#575279"),
	Love:          lipgloss.Color("#b4637a"),
	Gold:          lipgloss.Color("#ea9d34"),
	Rose:          lipgloss.Color("#d7827e"),
	Pine:          lipgloss.Color("#286983"),
	Foam:          lipgloss.Color("#56949f"),
	Iris:          lipgloss.Color("#907aa9"),
	Accent:        lipgloss.Color("#cf3222"),
	GradientStart: "#d7827e", // rose
	GradientEnd:   "#cf3222", // accent
}

// current is only touched from the Bubble Tea goroutine.
var current = Dawn

// Current returns the palette in use.
func Current() Palette {
	return current
}

// Set makes p the palette in use.
func Set(p Palette) {
	current = p
}

// For returns the palette for a persisted theme.
func For(t config.Theme) Palette {
	if t.IsDark() {
		return Moon
	}
	return Dawn
}

// Apply switches to the palette for t and returns it.
func Apply(t config.Theme) Palette {
	p := For(t)
	Set(p)
	return p
}
