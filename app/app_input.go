package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kastheco/codex/keys"
	"github.com/kastheco/codex/log"
	"github.com/kastheco/codex/ui"
	"github.com/kastheco/codex/ui/overlay"
)

func (m *home) handleMenuHighlighting(msg tea.KeyMsg) (cmd tea.Cmd, returnEarly bool) {
	// Handle menu highlighting when you press a button. We intercept it here and immediately return to
	// update the ui while re-sending the keypress. Then, on the next call to this, we actually handle the keypress.
	if m.keySent {
		m.keySent = false
		return nil, false
	}
	if m.state != stateBrowse {
		return nil, false
	}
	// If it's in the global keymap, we should try to highlight it.
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil, false
	}
	// Movement keys repeat too fast to be worth flashing.
	switch name {
	case keys.KeyUp, keys.KeyDown, keys.KeyLeft, keys.KeyRight:
		return nil, false
	}
	// Direct category jumps share the single "1-5" entry.
	if _, isCategory := keys.CategoryIndex(name); isCategory {
		name = keys.KeyCategoryAll
	}

	m.keySent = true
	return tea.Batch(
		func() tea.Msg { return msg },
		m.keydownCallback(name)), true
}

// handleMouse processes clicks on zones and wheel scrolling over the grid.
func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch m.state {
	case stateHelp:
		return m.closeHelp()
	case stateAuth:
		if msg.Button != tea.MouseButtonLeft || m.authOverlay == nil {
			return m, nil
		}
		return m, m.handleAuthEvent(m.authOverlay.HandleClick(msg))
	case stateSearch:
		if msg.Button != tea.MouseButtonLeft || m.searchOverlay == nil {
			return m, nil
		}
		if zone.Get(overlay.ZoneSearchExit).InBounds(msg) {
			m.closeSearch()
			return m, nil
		}
		if idx, ok := m.searchOverlay.ResultAt(msg); ok {
			m.searchOverlay.SelectIndex(idx)
			return m, m.activateSearchSelection()
		}
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.grid.Move(0, -1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.grid.Move(0, 1)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	switch {
	case zone.Get(ui.ZoneSearch).InBounds(msg):
		m.openSearch()
		return m, nil
	case zone.Get(ui.ZoneTheme).InBounds(msg):
		return m, m.toggleTheme()
	case zone.Get(ui.ZoneAuth).InBounds(msg):
		if m.snap.Authenticated() {
			return m, m.disconnect()
		}
		return m, m.openAuth()
	}
	if idx, ok := m.tabBar.TabAt(msg); ok {
		if m.tabBar.SetActive(idx) {
			m.refresh()
		}
		return m, nil
	}
	if idx, ok := m.grid.CardAt(msg); ok {
		m.grid.Select(idx)
		return m, m.activateSelected()
	}
	return m, nil
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (mod tea.Model, cmd tea.Cmd) {
	cmd, returnEarly := m.handleMenuHighlighting(msg)
	if returnEarly {
		return m, cmd
	}

	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	switch m.state {
	case stateHelp:
		if m.helpOverlay == nil || m.helpOverlay.HandleKeyPress(msg) {
			return m.closeHelp()
		}
		return m, nil
	case stateSearch:
		return m.handleSearchKey(msg)
	case stateAuth:
		if m.authOverlay == nil {
			m.setState(stateBrowse)
			return m, nil
		}
		return m, m.handleAuthEvent(m.authOverlay.HandleKeyPress(msg))
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}
	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyUp:
		m.grid.Move(0, -1)
	case keys.KeyDown:
		m.grid.Move(0, 1)
	case keys.KeyLeft:
		m.grid.Move(-1, 0)
	case keys.KeyRight:
		m.grid.Move(1, 0)
	case keys.KeyEnter:
		return m, m.activateSelected()
	case keys.KeySearch:
		m.openSearch()
	case keys.KeyEsc:
		// Outside the palette esc drops a leftover query.
		if m.filter.Query != "" {
			m.filter.Query = ""
			m.refresh()
		}
	case keys.KeyNextTab:
		m.tabBar.Next()
		m.refresh()
	case keys.KeyPrevTab:
		m.tabBar.Prev()
		m.refresh()
	case keys.KeyCategoryAll, keys.KeyCategoryCore, keys.KeyCategoryBrand, keys.KeyCategoryGrowth, keys.KeyCategoryConversion:
		idx, _ := keys.CategoryIndex(name)
		if m.tabBar.SetActive(idx) {
			m.refresh()
		}
	case keys.KeyAuth:
		if !m.snap.Authenticated() {
			return m, m.openAuth()
		}
	case keys.KeyDisconnect:
		if m.snap.Authenticated() {
			return m, m.disconnect()
		}
	case keys.KeyTheme:
		return m, m.toggleTheme()
	case keys.KeyCopy:
		return m, m.copySelected()
	case keys.KeyHelp:
		m.showHelp()
	}
	return m, nil
}

func (m *home) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchOverlay == nil {
		m.setState(stateBrowse)
		return m, nil
	}
	switch m.searchOverlay.HandleKeyPress(msg) {
	case overlay.SearchClose:
		m.closeSearch()
	case overlay.SearchQueryChanged:
		m.filter.Query = m.searchOverlay.Query()
		m.refresh()
		m.searchOverlay.SetResults(m.visible())
	case overlay.SearchActivate:
		return m, m.activateSearchSelection()
	}
	return m, nil
}

// setState switches the interaction state and the key rail with it.
func (m *home) setState(s state) {
	m.state = s
	switch s {
	case stateSearch:
		m.menu.SetState(ui.StateSearch)
	case stateAuth:
		m.menu.SetState(ui.StateAuth)
	case stateHelp:
		m.menu.SetState(ui.StateHelp)
	default:
		m.menu.SetState(ui.StateBrowse)
	}
}

func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.toastManager.Error(err.Error())
	return m.toastTickCmd()
}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}
