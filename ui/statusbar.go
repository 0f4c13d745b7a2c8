package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kastheco/codex/config"
	"github.com/kastheco/codex/session"
	"github.com/kastheco/codex/ui/palette"
)

// StatusBarData holds the contextual information displayed in the status bar.
type StatusBarData struct {
	Session      session.Snapshot
	IdentityHost string // empty = identity not configured
	Theme        config.Theme
}

// StatusBar is the top navigation bar.
type StatusBar struct {
	width int
	data  StatusBarData
}

// NewStatusBar creates a new StatusBar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the terminal width for the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetData updates the status bar content.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

const statusBarSep = " │ "

// SessionLabel is the status bar's description of a snapshot.
func SessionLabel(snap session.Snapshot) string {
	switch snap.Status {
	case session.StatusAuthenticated:
		if snap.Email != "" {
			return snap.Email
		}
		return snap.UserID
	case session.StatusAnonymous:
		return "anonymous"
	default:
		return "connecting…"
	}
}

func themeLabel(t config.Theme) string {
	if t.IsDark() {
		return "☾ dark"
	}
	return "☀ light"
}

func (s *StatusBar) String() string {
	if s.width < 10 {
		return ""
	}
	p := palette.Current()
	bar := lipgloss.NewStyle().Background(p.Surface)
	sep := bar.Foreground(p.Overlay).Render(statusBarSep)

	left := []string{
		bar.Foreground(p.Text).Bold(true).Render("CODEX"),
		zone.Mark(ZoneTheme, bar.Foreground(p.Subtle).Render(themeLabel(s.data.Theme))),
	}
	if s.data.IdentityHost != "" {
		left = append(left, bar.Foreground(p.Muted).Render(s.data.IdentityHost))
	}

	snap := s.data.Session
	sessionStyle := bar.Foreground(p.Muted)
	if snap.Authenticated() {
		sessionStyle = bar.Foreground(p.Foam)
	}
	var action, badge string
	if snap.Authenticated() {
		action = bar.Foreground(p.Accent).Bold(true).Render("DISCONNECT")
		badge = bar.Foreground(p.Base).Background(p.Text).Bold(true).Padding(0, 1).Render("AUTHENTICATED")
	} else {
		action = bar.Foreground(p.Subtle).Bold(true).Render("SIGN IN")
		badge = bar.Foreground(p.Base).Background(p.Text).Bold(true).Padding(0, 1).Render("GET ACCESS")
	}
	right := []string{
		sessionStyle.Render(SessionLabel(snap)),
		zone.Mark(ZoneAuth, action),
		badge,
	}

	l := strings.Join(left, sep)
	r := strings.Join(right, sep)
	inner := s.width - 2
	gap := inner - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 1 {
		// Drop the left-hand extras before the session details.
		l = left[0]
		gap = max(1, inner-lipgloss.Width(l)-lipgloss.Width(r))
	}
	content := l + bar.Render(strings.Repeat(" ", gap)) + r

	return bar.Padding(0, 1).Width(s.width).MaxHeight(1).Render(content)
}
