package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kastheco/codex/auth"
	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/config"
	"github.com/kastheco/codex/gate"
	"github.com/kastheco/codex/log"
	"github.com/kastheco/codex/ui"
	"github.com/kastheco/codex/ui/overlay"
	"github.com/kastheco/codex/ui/palette"
)

const (
	msgWelcomeBack        = "Welcome back."
	msgRegistered         = "Registration successful."
	msgCheckEmail         = "Success. Please check your email to verify your account."
	msgUnexpectedError    = "An unexpected error occurred."
	msgWaitingForBrowser  = "Waiting for browser sign-in..."
	msgLinkCopied         = "Link copied."
	msgIdentityNotEnabled = "Sign-in is not configured."
)

type authKind int

const (
	authSignIn authKind = iota
	authSignUp
	authOAuth
)

// -- Search --

func (m *home) openSearch() {
	m.searchOverlay = overlay.NewSearchOverlay(m.filter.Query, ui.Icon)
	m.searchOverlay.SetWidth(m.termWidth)
	m.searchOverlay.SetResults(m.visible())
	m.setState(stateSearch)
}

// closeSearch hides the palette. The query stays applied to the grid.
func (m *home) closeSearch() {
	m.searchOverlay = nil
	m.setState(stateBrowse)
}

func (m *home) activateSearchSelection() tea.Cmd {
	if m.searchOverlay == nil {
		return nil
	}
	it, ok := m.searchOverlay.Selected()
	if !ok {
		return nil
	}
	m.closeSearch()
	return m.activate(it)
}

// -- Gate --

func (m *home) activateSelected() tea.Cmd {
	it, ok := m.grid.Selected()
	if !ok {
		return nil
	}
	return m.activate(it)
}

// activate runs an item through the gate: signed-in users get the link
// opened, everyone else gets the sign-in prompt.
func (m *home) activate(it catalog.Item) tea.Cmd {
	action := gate.Activate(it, m.snap)
	if action.Kind == gate.PromptAuth {
		return m.openAuth()
	}
	open := m.openURL
	url := action.URL
	log.InfoLog.Printf("opening module %q", it.Name)
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openedMsg{err: fmt.Errorf("open %s: %w", it.Name, err)}
		}
		return openedMsg{}
	}
}

func (m *home) copySelected() tea.Cmd {
	it, ok := m.grid.Selected()
	if !ok {
		return nil
	}
	if !gate.Allows(m.snap) {
		return m.openAuth()
	}
	if err := m.copyText(it.URL); err != nil {
		return m.handleError(fmt.Errorf("copy link: %w", err))
	}
	m.toastManager.Success(msgLinkCopied)
	return m.toastTickCmd()
}

// -- Auth prompt --

// openAuth shows the sign-in prompt over whatever else was open.
func (m *home) openAuth() tea.Cmd {
	if m.identity == nil {
		m.toastManager.Info(msgIdentityNotEnabled)
		return m.toastTickCmd()
	}
	m.searchOverlay = nil
	m.helpOverlay = nil
	m.authOverlay = overlay.NewAuthOverlay(&m.spinner)
	m.setState(stateAuth)
	return authTickCmd()
}

// closeAuth hides the prompt and abandons any request it started.
func (m *home) closeAuth() {
	m.cancelAuth()
	m.authOverlay = nil
	m.setState(stateBrowse)
}

func (m *home) cancelAuth() {
	if m.authCancel != nil {
		m.authCancel()
		m.authCancel = nil
	}
	if m.oauthToastID != "" {
		m.toastManager.Resolve(m.oauthToastID, overlay.ToastInfo, "Sign-in cancelled.")
		m.oauthToastID = ""
	}
	// Any answer still on its way belongs to the abandoned request.
	m.authSeq++
}

func (m *home) handleAuthEvent(ev overlay.AuthEvent) tea.Cmd {
	switch ev {
	case overlay.AuthClose:
		m.closeAuth()
	case overlay.AuthSubmit:
		kind := authSignIn
		if m.authOverlay.Mode() == overlay.AuthRegister {
			kind = authSignUp
		}
		return m.startAuth(kind)
	case overlay.AuthOAuth:
		return m.startAuth(authOAuth)
	}
	return nil
}

// startAuth sends one request to the identity service on a context the
// prompt can cancel.
func (m *home) startAuth(kind authKind) tea.Cmd {
	m.cancelAuth()
	ctx, cancel := context.WithCancel(m.ctx)
	m.authCancel = cancel
	seq := m.authSeq
	m.authOverlay.SetLoading(true)

	identity := m.identity
	email, password := m.authOverlay.Email(), m.authOverlay.Password()
	provider := m.cfg.OAuthProvider

	var cmds []tea.Cmd
	if kind == authOAuth {
		m.oauthToastID = m.toastManager.Loading(msgWaitingForBrowser)
		cmds = append(cmds, m.toastTickCmd())
	}
	cmds = append(cmds, func() tea.Msg {
		res := authResultMsg{seq: seq, kind: kind}
		switch kind {
		case authSignIn:
			res.sess, res.err = identity.SignIn(ctx, email, password)
		case authSignUp:
			var out *auth.SignUpResult
			out, res.err = identity.SignUp(ctx, email, password)
			if out != nil {
				res.sess = out.Session
				res.pending = out.PendingVerification
			}
		case authOAuth:
			res.sess, res.err = identity.SignInOAuth(ctx, provider)
		}
		return res
	})
	return tea.Batch(cmds...)
}

// authFailureMessage is what the user sees for a failed request.
func authFailureMessage(err error) string {
	if ae, ok := auth.AsAuthError(err); ok {
		return ae.Error()
	}
	return msgUnexpectedError
}

func (m *home) handleAuthResult(msg authResultMsg) tea.Cmd {
	if msg.seq != m.authSeq || m.authOverlay == nil {
		// The prompt was closed or resubmitted; nobody is waiting for this.
		return nil
	}
	if m.authCancel != nil {
		m.authCancel()
		m.authCancel = nil
	}
	m.authOverlay.SetLoading(false)
	toastID := m.oauthToastID
	m.oauthToastID = ""

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		text := authFailureMessage(msg.err)
		log.WarningLog.Printf("auth request failed: %v", msg.err)
		m.authOverlay.SetError(text)
		if toastID != "" {
			m.toastManager.Resolve(toastID, overlay.ToastError, text)
		} else {
			m.toastManager.Error(text)
		}
		return m.toastTickCmd()
	}

	var text string
	typ := overlay.ToastSuccess
	switch {
	case msg.pending:
		text, typ = msgCheckEmail, overlay.ToastInfo
	case msg.kind == authSignUp:
		text = msgRegistered
	default:
		text = msgWelcomeBack
	}
	if toastID != "" {
		m.toastManager.Resolve(toastID, typ, text)
	} else if typ == overlay.ToastInfo {
		m.toastManager.Info(text)
	} else {
		m.toastManager.Success(text)
	}
	m.authOverlay = nil
	m.setState(stateBrowse)
	return m.toastTickCmd()
}

// -- Session --

func (m *home) disconnect() tea.Cmd {
	observer := m.observer
	ctx := m.ctx
	return func() tea.Msg {
		return signedOutMsg{err: observer.SignOut(ctx)}
	}
}

// -- Theme --

// toggleTheme flips light/dark, repaints and persists the choice. A failed
// save keeps the new theme for this run.
func (m *home) toggleTheme() tea.Cmd {
	m.theme = m.theme.Toggle()
	palette.Apply(m.theme)
	m.repaint()
	m.applySession()
	if err := config.SaveTheme(m.prefs, m.theme); err != nil {
		return m.handleError(fmt.Errorf("save theme: %w", err))
	}
	return nil
}

// -- Help --

func (m *home) showHelp() {
	m.helpOverlay = overlay.NewHelpOverlay(helpMarkdown(m.snap.Authenticated()))
	m.helpOverlay.SetWidth(m.termWidth)
	m.setState(stateHelp)
}

func (m *home) closeHelp() (tea.Model, tea.Cmd) {
	m.helpOverlay = nil
	m.setState(stateBrowse)
	return m, nil
}
