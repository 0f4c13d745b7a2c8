package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/kastheco/codex/catalog"
)

func TestGradientText_KeepsText(t *testing.T) {
	in := "AB CD\nEF"
	out := GradientText(in, "#ea9a97", "#e0503f")
	assert.Equal(t, in, ansi.Strip(out))
	assert.Equal(t, out, GradientText(in, "#ea9a97", "#e0503f"), "memoized result differs")
}

func TestGradientText_BadColourReturnsInput(t *testing.T) {
	assert.Equal(t, "codex", GradientText("codex", "not-a-colour", "#e0503f"))
}

func TestIcon_EveryCatalogIconResolves(t *testing.T) {
	for _, it := range catalog.List() {
		assert.NotEqual(t, fallbackIcon, Icon(it.Icon), "no glyph for %s (%s)", it.Name, it.Icon)
	}
	assert.Equal(t, fallbackIcon, Icon("no-such-icon"))
}
