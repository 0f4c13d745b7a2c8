package app

import (
	"fmt"
	"strings"

	"github.com/kastheco/codex/keys"
)

type helpEntry struct {
	name keys.KeyName
	desc string
}

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{"Browse", []helpEntry{
		{keys.KeyUp, "move between cards (arrows or hjkl)"},
		{keys.KeyEnter, "open the selected module"},
		{keys.KeyCopy, "copy the module link"},
		{keys.KeyNextTab, "next category"},
		{keys.KeyPrevTab, "previous category"},
		{keys.KeyCategoryAll, "jump to All, Core, Brand, Growth or Conversion"},
		{keys.KeySearch, "search modules by name"},
	}},
	{"Session", []helpEntry{
		{keys.KeyAuth, "sign in or register"},
		{keys.KeyDisconnect, "disconnect"},
	}},
	{"Display", []helpEntry{
		{keys.KeyTheme, "switch between light and dark"},
		{keys.KeyHelp, "this screen"},
		{keys.KeyQuit, "quit"},
	}},
}

// helpMarkdown is the key reference shown by the help overlay.
func helpMarkdown(authenticated bool) string {
	var b strings.Builder
	b.WriteString("# Codex\n\n")
	b.WriteString("A directory of AI strategy modules. ")
	if authenticated {
		b.WriteString("Your session is **unlocked**: every module opens in the browser.\n\n")
	} else {
		b.WriteString("Modules are **secured** until you sign in.\n\n")
	}
	for _, sec := range helpSections {
		fmt.Fprintf(&b, "## %s\n\n", sec.title)
		for _, e := range sec.entries {
			h := keys.GlobalkeyBindings[e.name].Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, e.desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("Click tabs, cards and the status bar with the mouse. Press any key to close.\n")
	return b.String()
}
