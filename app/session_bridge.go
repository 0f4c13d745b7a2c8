package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kastheco/codex/session"
)

// sessionChangedMsg carries an observer notification into the update loop.
type sessionChangedMsg struct {
	change session.Change
}

// sessionBuffer absorbs bursts of notifications while Update is busy.
const sessionBuffer = 16

// watchSession registers with the observer. Listeners run on the observer's
// dispatch goroutine, so the change is handed over on a channel and picked
// up by waitForSession.
func (m *home) watchSession() {
	ch := make(chan session.Change, sessionBuffer)
	done := m.done
	m.sessionCh = ch
	m.unsubscribe = m.observer.OnChange(func(c session.Change) {
		select {
		case ch <- c:
		case <-done:
		}
	})
}

// waitForSession blocks until the next session change. It is re-armed every
// time a change is delivered.
func (m *home) waitForSession() tea.Cmd {
	if m.sessionCh == nil {
		return nil
	}
	ch, done := m.sessionCh, m.done
	return func() tea.Msg {
		select {
		case c := <-ch:
			return sessionChangedMsg{change: c}
		case <-done:
			return nil
		}
	}
}
