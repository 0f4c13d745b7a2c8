package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kastheco/codex/auth"
	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/config"
	"github.com/kastheco/codex/internal/browser"
	"github.com/kastheco/codex/session"
	"github.com/kastheco/codex/ui"
	"github.com/kastheco/codex/ui/overlay"
	"github.com/kastheco/codex/ui/palette"
)

// Deps are the collaborators the shell drives.
type Deps struct {
	Config   *config.Config
	Identity auth.Identity
	// Observer must already be started.
	Observer *session.Observer
	Prefs    config.PrefStore

	// OpenURL and CopyText default to the system browser and clipboard.
	OpenURL  browser.Opener
	CopyText func(string) error
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, deps Deps) error {
	palette.Apply(config.LoadTheme(deps.Prefs))

	// Point the terminal's default background at the palette base so resets
	// and unstyled cells match the theme.
	restore := ui.SetTerminalBackground()
	defer restore()

	zone.NewGlobal()
	h := newHome(ctx, deps)
	defer h.close()

	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateBrowse state = iota
	// stateSearch is the command palette.
	stateSearch
	// stateAuth is the sign-in / register prompt.
	stateAuth
	// stateHelp is the key reference.
	stateHelp
)

type home struct {
	ctx context.Context

	// -- Collaborators --

	cfg      *config.Config
	identity auth.Identity
	observer *session.Observer
	prefs    config.PrefStore
	openURL  browser.Opener
	copyText func(string) error
	// repaint re-emits the terminal background after a theme switch.
	repaint func()
	now     func() time.Time

	// -- State --

	state  state
	filter catalog.FilterState
	snap   session.Snapshot
	theme  config.Theme

	// keySent is used to manage underlining menu items
	keySent bool

	// authCancel abandons the in-flight identity request, if any.
	authCancel context.CancelFunc
	// authSeq tags identity requests so answers to abandoned ones are dropped.
	authSeq int
	// oauthToastID is the loading toast shown while the browser flow runs.
	oauthToastID string

	sessionCh   chan session.Change
	unsubscribe func()
	done        chan struct{}

	// -- UI Components --

	statusBar *ui.StatusBar
	tabBar    *ui.TabBar
	grid      *ui.Grid
	menu      *ui.Menu
	// toastManager manages toast notifications
	toastManager *overlay.ToastManager
	// global spinner instance. we plumb this down to where it's needed
	spinner spinner.Model

	searchOverlay *overlay.SearchOverlay
	authOverlay   *overlay.AuthOverlay
	helpOverlay   *overlay.HelpOverlay

	termWidth  int
	termHeight int
	// showHero and showFooter track which optional blocks fit the terminal.
	showHero   bool
	showFooter bool
}

func newHome(ctx context.Context, deps Deps) *home {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := &home{
		ctx:       ctx,
		cfg:       cfg,
		identity:  deps.Identity,
		observer:  deps.Observer,
		prefs:     deps.Prefs,
		openURL:   deps.OpenURL,
		copyText:  deps.CopyText,
		repaint:   ui.RepaintTerminalBackground,
		now:       time.Now,
		state:     stateBrowse,
		filter:    catalog.NewFilterState(),
		theme:     config.LoadTheme(deps.Prefs),
		statusBar: ui.NewStatusBar(),
		tabBar:    ui.NewTabBar(),
		grid:      ui.NewGrid(),
		menu:      ui.NewMenu(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		done:      make(chan struct{}),
	}
	if h.openURL == nil {
		h.openURL = browser.Open
	}
	if h.copyText == nil {
		h.copyText = clipboard.WriteAll
	}
	h.toastManager = overlay.NewToastManager(&h.spinner)
	palette.Apply(h.theme)

	if h.observer != nil {
		h.snap = h.observer.Current()
		h.watchSession()
	}
	h.applySession()
	h.refresh()
	return h
}

// close detaches from the observer and abandons pending identity requests.
func (m *home) close() {
	if m.authCancel != nil {
		m.authCancel()
		m.authCancel = nil
	}
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// visible is the filtered catalog for the current tab and query.
func (m *home) visible() []catalog.Item {
	return catalog.Visible(catalog.List(), m.filter)
}

// refresh re-applies the filter to the tab counts and the grid.
func (m *home) refresh() {
	m.filter.Category = m.tabBar.Active()
	m.tabBar.SetCounts(catalog.List(), m.filter.Query)
	m.grid.SetItems(m.visible())
}

// applySession pushes the current snapshot into every component that shows it.
func (m *home) applySession() {
	m.grid.SetUnlocked(m.snap.Authenticated())
	m.menu.SetAuthenticated(m.snap.Authenticated())
	m.statusBar.SetData(ui.StatusBarData{
		Session:      m.snap,
		IdentityHost: m.cfg.IdentityHost(),
		Theme:        m.theme,
	})
}

const (
	statusBarHeight = 1
	menuHeight      = 1
)

// updateHandleWindowSizeEvent lays the page out for a new terminal size. The
// hero and footer are dropped when keeping them would leave no room for a
// row of cards.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.termWidth, m.termHeight = msg.Width, msg.Height

	m.statusBar.SetSize(msg.Width)
	m.tabBar.SetWidth(msg.Width)
	m.menu.SetSize(msg.Width, menuHeight)
	m.toastManager.SetSize(msg.Width, msg.Height)
	if m.searchOverlay != nil {
		m.searchOverlay.SetWidth(msg.Width)
	}
	if m.helpOverlay != nil {
		m.helpOverlay.SetWidth(msg.Width)
	}

	minGrid := ui.CardHeight + 1
	avail := msg.Height - statusBarHeight - menuHeight - lipgloss.Height(m.tabBar.String())
	heroHeight := lipgloss.Height(ui.Hero(msg.Width))
	footerHeight := lipgloss.Height(ui.Footer(msg.Width, false, m.now().Year()))

	m.showHero = avail-heroHeight >= minGrid
	if m.showHero {
		avail -= heroHeight
	}
	m.showFooter = avail-footerHeight >= 2*ui.CardHeight+1
	if m.showFooter {
		avail -= footerHeight
	}
	m.grid.SetSize(msg.Width, max(0, avail))
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForSession(),
	)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overlay.ToastTickMsg:
		m.toastManager.Tick()
		if m.toastManager.HasActiveToasts() {
			return m, m.toastTickCmd()
		}
		return m, nil
	case authTickMsg:
		if m.authOverlay == nil {
			return m, nil
		}
		m.authOverlay.Tick()
		if m.authOverlay.Animating() {
			return m, authTickCmd()
		}
		return m, nil
	case sessionChangedMsg:
		m.snap = msg.change.Snapshot
		m.applySession()
		return m, m.waitForSession()
	case authResultMsg:
		return m, m.handleAuthResult(msg)
	case signedOutMsg:
		if msg.err != nil {
			return m, m.handleError(msg.err)
		}
		m.snap = m.observer.Current()
		m.applySession()
		m.toastManager.Info("Disconnected.")
		return m, m.toastTickCmd()
	case openedMsg:
		if msg.err != nil {
			return m, m.handleError(msg.err)
		}
		return m, nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case error:
		return m, m.handleError(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	m.close()
	return m, tea.Quit
}

func (m *home) View() string {
	authenticated := m.snap.Authenticated()

	sections := []string{m.statusBar.String()}
	if m.showHero {
		sections = append(sections, ui.Hero(m.termWidth))
	}
	sections = append(sections, m.tabBar.String(), m.grid.String())
	if m.showFooter {
		sections = append(sections, ui.Footer(m.termWidth, authenticated, m.now().Year()))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	// Pin the key rail to the last row.
	body = ui.FillBackground(body, max(0, m.termHeight-menuHeight))
	mainView := lipgloss.JoinVertical(lipgloss.Left, body, m.menu.String())

	var result string
	switch {
	case m.state == stateSearch && m.searchOverlay != nil:
		// The palette hangs from the top of the page rather than the centre.
		x := max(0, (m.termWidth-lipgloss.Width(m.searchOverlay.Render()))/2)
		result = overlay.PlaceOverlay(x, max(2, m.termHeight/7), m.searchOverlay.Render(), mainView, true, false)
	case m.state == stateAuth && m.authOverlay != nil:
		fg := m.authOverlay.Render()
		x := max(0, (m.termWidth-lipgloss.Width(fg))/2)
		y := max(0, (m.termHeight-lipgloss.Height(fg))/2) + m.authOverlay.SlideOffset()
		result = overlay.PlaceOverlay(x, y, fg, mainView, true, false)
	case m.state == stateHelp && m.helpOverlay != nil:
		result = overlay.PlaceOverlay(0, 0, m.helpOverlay.Render(), mainView, true, true)
	default:
		result = mainView
	}

	if toastView := m.toastManager.View(); toastView != "" {
		x, y := m.toastManager.GetPosition()
		result = overlay.PlaceOverlay(x, y, toastView, result, false, false)
	}

	// Process bubblezone markers before rendering is complete
	// (zone markers inflate lipgloss.Width if left in place).
	result = zone.Scan(result)

	return ui.FillBackground(result, m.termHeight)
}

type keyupMsg struct{}

// authTickMsg advances the auth prompt's slide-in.
type authTickMsg struct{}

// authResultMsg carries the answer to one identity request.
type authResultMsg struct {
	seq     int
	kind    authKind
	sess    *auth.Session
	pending bool
	err     error
}

// signedOutMsg is sent when a disconnect finishes.
type signedOutMsg struct {
	err error
}

// openedMsg is sent after a module link was handed to the browser.
type openedMsg struct {
	err error
}

func (m *home) toastTickCmd() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(overlay.ToastFrame)
		return overlay.ToastTickMsg{}
	}
}

func authTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(time.Time) tea.Msg {
		return authTickMsg{}
	})
}
