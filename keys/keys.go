package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter // Activate the selected module through the gate
	KeyQuit

	KeySearch // Open the search palette
	KeyEsc    // Close whatever overlay is open

	KeyNextTab // Cycle to the next category
	KeyPrevTab // Cycle to the previous category

	// Direct category jumps, in tab order.
	KeyCategoryAll
	KeyCategoryCore
	KeyCategoryBrand
	KeyCategoryGrowth
	KeyCategoryConversion

	KeyAuth       // Open the sign-in prompt
	KeyDisconnect // Sign out
	KeyTheme      // Toggle light/dark
	KeyCopy       // Copy the selected module link
	KeyHelp       // Show the help screen
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"left":      KeyLeft,
	"h":         KeyLeft,
	"right":     KeyRight,
	"l":         KeyRight,
	"enter":     KeyEnter,
	"o":         KeyEnter,
	"q":         KeyQuit,
	"ctrl+c":    KeyQuit,
	"ctrl+k":    KeySearch,
	"/":         KeySearch,
	"esc":       KeyEsc,
	"tab":       KeyNextTab,
	"shift+tab": KeyPrevTab,
	"1":         KeyCategoryAll,
	"2":         KeyCategoryCore,
	"3":         KeyCategoryBrand,
	"4":         KeyCategoryGrowth,
	"5":         KeyCategoryConversion,
	"a":         KeyAuth,
	"x":         KeyDisconnect,
	"t":         KeyTheme,
	"y":         KeyCopy,
	"?":         KeyHelp,
}

// CategoryIndex returns the tab index for a direct category key.
func CategoryIndex(name KeyName) (int, bool) {
	if name < KeyCategoryAll || name > KeyCategoryConversion {
		return 0, false
	}
	return int(name - KeyCategoryAll), true
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	KeyRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("↵/o", "open"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	KeySearch: key.NewBinding(
		key.WithKeys("ctrl+k", "/"),
		key.WithHelp("^k", "search"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	KeyNextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next category"),
	),
	KeyPrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev category"),
	),
	KeyCategoryAll: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1-5", "category"),
	),
	KeyCategoryCore: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "core"),
	),
	KeyCategoryBrand: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "brand"),
	),
	KeyCategoryGrowth: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "growth"),
	),
	KeyCategoryConversion: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "conversion"),
	),
	KeyAuth: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "sign in"),
	),
	KeyDisconnect: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "disconnect"),
	),
	KeyTheme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}
