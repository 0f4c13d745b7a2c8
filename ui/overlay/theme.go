package overlay

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kastheco/codex/ui/palette"
)

// ThemeCodex returns a huh theme built from the current palette. Call it
// again after a theme switch.
func ThemeCodex() *huh.Theme {
	p := palette.Current()
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Accent)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(p.Muted).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(p.Text).Bold(true).MarginBottom(1)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Love)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Love)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Base).Background(p.Accent)
	t.Focused.Next = t.Focused.FocusedButton
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Subtle).Background(p.Overlay)

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Accent)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Accent)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(p.Text)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.TextInput.Prompt = t.Blurred.TextInput.Prompt.Foreground(p.Overlay)
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
