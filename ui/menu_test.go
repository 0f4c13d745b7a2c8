package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/kastheco/codex/keys"
)

func menuText(m *Menu) string {
	m.SetSize(160, 1)
	return ansi.Strip(m.String())
}

func TestMenu_BrowseAnonymous(t *testing.T) {
	m := NewMenu()
	out := menuText(m)

	assert.Contains(t, out, "↵/o open")
	assert.Contains(t, out, "a sign in")
	assert.Contains(t, out, "^k search")
	assert.NotContains(t, out, "disconnect")
	assert.NotContains(t, out, "copy link")
}

func TestMenu_BrowseAuthenticated(t *testing.T) {
	m := NewMenu()
	m.SetAuthenticated(true)
	out := menuText(m)

	assert.Contains(t, out, "x disconnect")
	assert.Contains(t, out, "y copy link")
	assert.NotContains(t, out, "sign in")
}

func TestMenu_OverlayStates(t *testing.T) {
	tests := []struct {
		state MenuState
		want  []string
	}{
		{StateSearch, []string{"↑↓ select", "esc close"}},
		{StateAuth, []string{"tab next field", "↵ submit", "^g google", "esc close"}},
		{StateHelp, []string{"esc close", "q quit"}},
	}
	for _, tt := range tests {
		m := NewMenu()
		m.SetState(tt.state)
		out := menuText(m)
		for _, w := range tt.want {
			assert.Contains(t, out, w, "state %d", tt.state)
		}
		assert.NotContains(t, out, "t theme", "state %d", tt.state)
	}
}

func TestMenu_KeydownKeepsText(t *testing.T) {
	m := NewMenu()
	m.Keydown(keys.KeyTheme)
	assert.Contains(t, menuText(m), "t theme")
	m.ClearKeydown()
	assert.Contains(t, menuText(m), "t theme")
}
