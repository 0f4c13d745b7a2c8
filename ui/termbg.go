package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/kastheco/codex/ui/palette"
)

// termOut is where background control sequences go.
var termOut io.Writer = os.Stdout

const (
	osc11Set     = "\033]11;%s\033\\"
	osc111Revert = "\033]111\033\\"
)

// SetTerminalBackground points the terminal's default background at the
// palette base so cells the renderer never styles match the theme. Call the
// returned func on exit to hand the user's own background back.
func SetTerminalBackground() func() {
	return setTermBg(termOut, string(palette.Current().Base))
}

// RepaintTerminalBackground re-sends the base colour after a theme switch.
func RepaintTerminalBackground() {
	setTermBg(termOut, string(palette.Current().Base))
}

func setTermBg(w io.Writer, hexColor string) func() {
	if hexColor == "" {
		return func() {}
	}
	fmt.Fprintf(w, osc11Set, hexColor)
	return func() { fmt.Fprint(w, osc111Revert) }
}
