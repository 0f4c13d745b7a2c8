package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPlaceOverlay_TopLeft(t *testing.T) {
	bg := "xxxx\nxxxx"
	out := PlaceOverlay(0, 0, "ab", bg, false, false)
	assert.Equal(t, "abxx\nxxxx", ansi.Strip(out))
}

func TestPlaceOverlay_Centered(t *testing.T) {
	bg := strings.Join([]string{"xxxx", "xxxx", "xxxx"}, "\n")
	out := PlaceOverlay(0, 0, "ab", bg, false, true)
	assert.Equal(t, "xxxx\nxabx\nxxxx", ansi.Strip(out))
}

func TestPlaceOverlay_ClampsOffscreenPosition(t *testing.T) {
	bg := "xxxx\nxxxx"
	out := PlaceOverlay(10, 10, "ab", bg, false, false)
	assert.Equal(t, "xxxx\nxxab", ansi.Strip(out))
}

func TestPlaceOverlay_ForegroundLargerThanBackground(t *testing.T) {
	out := PlaceOverlay(0, 0, "abcdef\nghijkl", "xx", false, false)
	assert.Equal(t, "abcdef\nghijkl", out)
}

func TestPlaceOverlay_ShadowAddsRowAndColumn(t *testing.T) {
	bg := strings.Repeat("xxxxxx\n", 4) + "xxxxxx"
	out := ansi.Strip(PlaceOverlay(0, 0, "ab\ncd", bg, true, false))
	lines := strings.Split(out, "\n")
	assert.Equal(t, "ab xxx", lines[0])
	assert.Equal(t, "cd░xxx", lines[1])
	assert.Equal(t, " ░░xxx", lines[2])
	assert.Equal(t, "xxxxxx", lines[3])
}
