package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/kastheco/codex/keys"
	"github.com/kastheco/codex/ui/palette"
)

var separator = " • "
var verticalSeparator = " │ "

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateBrowse MenuState = iota
	StateSearch
	StateAuth
	StateHelp
)

// Overlay-local hints that have no global binding.
var (
	searchNavBinding = key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "select"))
	authNextBinding  = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	authSubmit       = key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "submit"))
	authModeBinding  = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "sign in/register"))
	authOAuthBinding = key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^g", "google"))
)

// menuItem is one rail entry: either a global key or a local binding.
type menuItem struct {
	name    keys.KeyName
	binding *key.Binding
}

func (it menuItem) help() key.Help {
	if it.binding != nil {
		return it.binding.Help()
	}
	return keys.GlobalkeyBindings[it.name].Help()
}

func global(names ...keys.KeyName) []menuItem {
	out := make([]menuItem, len(names))
	for i, n := range names {
		out[i] = menuItem{name: n}
	}
	return out
}

func local(b *key.Binding) menuItem {
	return menuItem{name: -1, binding: b}
}

// Menu is the bottom key rail.
type Menu struct {
	actions       []menuItem
	system        []menuItem
	height, width int
	state         MenuState
	authenticated bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

func NewMenu() *Menu {
	m := &Menu{
		state:   StateBrowse,
		keyDown: -1,
	}
	m.updateOptions()
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

func (m *Menu) State() MenuState {
	return m.state
}

// SetAuthenticated swaps the sign-in entry for copy and disconnect.
func (m *Menu) SetAuthenticated(authenticated bool) {
	m.authenticated = authenticated
	m.updateOptions()
}

func (m *Menu) updateOptions() {
	switch m.state {
	case StateSearch:
		m.actions = []menuItem{local(&searchNavBinding), {name: keys.KeyEnter}}
		m.system = global(keys.KeyEsc)
	case StateAuth:
		m.actions = []menuItem{local(&authNextBinding), local(&authSubmit), local(&authModeBinding), local(&authOAuthBinding)}
		m.system = global(keys.KeyEsc)
	case StateHelp:
		m.actions = nil
		m.system = global(keys.KeyEsc, keys.KeyQuit)
	default:
		if m.authenticated {
			m.actions = global(keys.KeyEnter, keys.KeyCopy, keys.KeyNextTab, keys.KeyCategoryAll, keys.KeyDisconnect)
		} else {
			m.actions = global(keys.KeyEnter, keys.KeyNextTab, keys.KeyCategoryAll, keys.KeyAuth)
		}
		m.system = global(keys.KeySearch, keys.KeyTheme, keys.KeyHelp, keys.KeyQuit)
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	p := palette.Current()
	keyStyle := lipgloss.NewStyle().Foreground(p.Subtle)
	descStyle := lipgloss.NewStyle().Foreground(p.Muted)
	sepStyle := lipgloss.NewStyle().Foreground(p.Overlay)
	actionStyle := lipgloss.NewStyle().Foreground(p.Rose)

	render := func(items []menuItem, action bool) string {
		var s strings.Builder
		for i, it := range items {
			h := it.help()
			ks, ds, as := keyStyle, descStyle, actionStyle
			if it.binding == nil && m.keyDown == it.name {
				ks, ds, as = ks.Underline(true), ds.Underline(true), as.Underline(true)
			}
			if action {
				s.WriteString(as.Render(h.Key + " " + h.Desc))
			} else {
				s.WriteString(ks.Render(h.Key))
				s.WriteString(descStyle.Render(" "))
				s.WriteString(ds.Render(h.Desc))
			}
			if i != len(items)-1 {
				s.WriteString(sepStyle.Render(separator))
			}
		}
		return s.String()
	}

	var groups []string
	if len(m.actions) > 0 {
		groups = append(groups, render(m.actions, true))
	}
	if len(m.system) > 0 {
		groups = append(groups, render(m.system, false))
	}
	text := strings.Join(groups, sepStyle.Render(verticalSeparator))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}
