package ui

import "strings"

// FillBackground pads or cuts s to exactly height rows. The alt-screen
// renderer leaves old rows behind when a frame gets shorter, so every frame
// is sent at full height. Columns need no padding: the terminal default
// background already matches the palette.
func FillBackground(s string, height int) string {
	if height <= 0 {
		return s
	}
	rows := strings.Count(s, "\n") + 1
	switch {
	case rows < height:
		return s + strings.Repeat("\n", height-rows)
	case rows > height:
		lines := strings.SplitN(s, "\n", height+1)
		return strings.Join(lines[:height], "\n")
	}
	return s
}
