package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kastheco/codex/ui/palette"
)

// AuthMode selects between signing in and registering.
type AuthMode int

const (
	AuthSignIn AuthMode = iota
	AuthRegister
)

func (m AuthMode) String() string {
	if m == AuthRegister {
		return "register"
	}
	return "sign-in"
}

// AuthEvent is what a key press did to the auth prompt.
type AuthEvent int

const (
	AuthNone AuthEvent = iota
	AuthClose
	AuthSubmit
	AuthOAuth
)

const (
	AuthLoadingLabel = "Authenticating..."
	AuthSubtitle     = "Codex Suite Protocol"
	AuthOAuthLabel   = "Continue with Google"

	authWidth = 44

	// slideDistance is how many rows below its resting place the prompt starts.
	slideDistance = 6.0
)

// Messages shown under the form when a submit is missing a field.
const (
	MsgEmailRequired    = "Enter your email address."
	MsgPasswordRequired = "Enter your password."
)

// AuthOverlay is the sign-in / register prompt: an email and password form
// backed by huh, a Google shortcut and a mode toggle. It slides in on a
// harmonica spring.
type AuthOverlay struct {
	form     *huh.Form
	email    string
	password string
	field    int // 0 = email, 1 = password

	mode    AuthMode
	loading bool
	errMsg  string
	spinner *spinner.Model

	spring   harmonica.Spring
	slide    float64
	velocity float64
}

// NewAuthOverlay creates the prompt in sign-in mode. The spinner is shared
// with the rest of the app and only read here.
func NewAuthOverlay(s *spinner.Model) *AuthOverlay {
	a := &AuthOverlay{
		spinner: s,
		spring:  harmonica.NewSpring(harmonica.FPS(60), 14.0, 0.88),
		slide:   slideDistance,
	}
	a.buildForm()
	return a
}

func (a *AuthOverlay) buildForm() {
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("EMAIL ADDRESS").
				Placeholder("name@company.com").
				Value(&a.email),
			huh.NewInput().
				Key("password").
				Title("PASSWORD").
				Placeholder("••••••••").
				EchoMode(huh.EchoModePassword).
				Value(&a.password),
		),
	).
		WithTheme(ThemeCodex()).
		WithWidth(authWidth - 6).
		WithShowHelp(false).
		WithShowErrors(false)

	_ = a.form.Init()
	a.field = 0
}

func (a *AuthOverlay) updateForm(msg tea.Msg) {
	updated, _ := a.form.Update(msg)
	if form, ok := updated.(*huh.Form); ok {
		a.form = form
	}
}

// Mode returns the current mode.
func (a *AuthOverlay) Mode() AuthMode {
	return a.mode
}

// ToggleMode flips between sign in and register. Ignored while a request is
// in flight.
func (a *AuthOverlay) ToggleMode() {
	if a.loading {
		return
	}
	if a.mode == AuthSignIn {
		a.mode = AuthRegister
	} else {
		a.mode = AuthSignIn
	}
	a.errMsg = ""
}

// Email returns the trimmed email field.
func (a *AuthOverlay) Email() string {
	return strings.TrimSpace(a.email)
}

// Password returns the password field as typed.
func (a *AuthOverlay) Password() string {
	return a.password
}

// SetLoading shows or hides the in-flight indicator.
func (a *AuthOverlay) SetLoading(loading bool) {
	a.loading = loading
	if loading {
		a.errMsg = ""
	}
}

func (a *AuthOverlay) Loading() bool {
	return a.loading
}

// SetError shows msg under the form.
func (a *AuthOverlay) SetError(msg string) {
	a.errMsg = msg
}

func (a *AuthOverlay) Error() string {
	return a.errMsg
}

// Validate returns the message for a submit with a missing field, or ""
// when both fields are filled in.
func (a *AuthOverlay) Validate() string {
	if a.Email() == "" {
		return MsgEmailRequired
	}
	if a.password == "" {
		return MsgPasswordRequired
	}
	return ""
}

// HandleKeyPress processes a key and reports what the app should do.
func (a *AuthOverlay) HandleKeyPress(msg tea.KeyMsg) AuthEvent {
	switch msg.Type {
	case tea.KeyEsc:
		return AuthClose
	}
	if a.loading {
		// Only esc is live while a request is in flight.
		return AuthNone
	}

	switch msg.Type {
	case tea.KeyCtrlR:
		a.ToggleMode()
		return AuthNone
	case tea.KeyCtrlG:
		return AuthOAuth
	case tea.KeyTab, tea.KeyDown:
		if a.field == 0 {
			a.updateForm(huh.NextField())
			a.field = 1
		}
		return AuthNone
	case tea.KeyShiftTab, tea.KeyUp:
		if a.field == 1 {
			a.updateForm(huh.PrevField())
			a.field = 0
		}
		return AuthNone
	case tea.KeyEnter:
		if a.field == 0 {
			a.updateForm(huh.NextField())
			a.field = 1
			return AuthNone
		}
		if msg := a.Validate(); msg != "" {
			a.errMsg = msg
			return AuthNone
		}
		a.errMsg = ""
		return AuthSubmit
	default:
		a.updateForm(msg)
		return AuthNone
	}
}

// HandleClick maps a mouse press on one of the prompt's buttons to an event.
func (a *AuthOverlay) HandleClick(msg tea.MouseMsg) AuthEvent {
	switch {
	case zone.Get(ZoneAuthClose).InBounds(msg):
		return AuthClose
	case a.loading:
		return AuthNone
	case zone.Get(ZoneOAuth).InBounds(msg):
		return AuthOAuth
	case zone.Get(ZoneAuthToggle).InBounds(msg):
		a.ToggleMode()
	case zone.Get(ZoneAuthSubmit).InBounds(msg):
		if msg := a.Validate(); msg != "" {
			a.errMsg = msg
			return AuthNone
		}
		return AuthSubmit
	}
	return AuthNone
}

// Animating reports whether the slide-in is still moving.
func (a *AuthOverlay) Animating() bool {
	return a.slide > 0.05 || a.velocity > 0.05 || a.velocity < -0.05
}

// Tick advances the slide-in by one frame.
func (a *AuthOverlay) Tick() {
	a.slide, a.velocity = a.spring.Update(a.slide, a.velocity, 0)
	if !a.Animating() {
		a.slide, a.velocity = 0, 0
	}
}

// SlideOffset is how many rows below its resting place the prompt is drawn.
func (a *AuthOverlay) SlideOffset() int {
	if a.slide < 0 {
		return 0
	}
	return int(a.slide + 0.5)
}

// Title is the heading for the current mode.
func (a *AuthOverlay) Title() string {
	if a.mode == AuthRegister {
		return "Register"
	}
	return "Sign In"
}

// SubmitLabel is the submit button text for the current state.
func (a *AuthOverlay) SubmitLabel() string {
	switch {
	case a.loading:
		return AuthLoadingLabel
	case a.mode == AuthRegister:
		return "Register Account"
	default:
		return "Sign In"
	}
}

// ToggleLabel is the mode switch text.
func (a *AuthOverlay) ToggleLabel() string {
	if a.mode == AuthRegister {
		return "Have access? Sign In"
	}
	return "New user? Create Access"
}

// Render returns the styled prompt.
func (a *AuthOverlay) Render() string {
	p := palette.Current()
	inner := authWidth - 6
	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)

	closeBtn := zone.Mark(ZoneAuthClose, lipgloss.NewStyle().Foreground(p.Muted).Render("✕"))
	closeRow := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Render(closeBtn)

	title := center.Foreground(p.Text).Bold(true).Render(a.Title())
	subtitle := center.Foreground(p.Muted).Render(strings.ToUpper(AuthSubtitle))

	oauth := zone.Mark(ZoneOAuth, lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Foreground(p.Text).
		Width(inner-2).
		Align(lipgloss.Center).
		Render("G  "+strings.ToUpper(AuthOAuthLabel)))

	rule := strings.Repeat("─", (inner-16)/2)
	separator := center.Foreground(p.Overlay).Render(rule + " SECURITY LAYER " + rule)

	submitLabel := strings.ToUpper(a.SubmitLabel())
	if a.loading && a.spinner != nil {
		submitLabel = a.spinner.View() + " " + submitLabel
	}
	submitStyle := lipgloss.NewStyle().
		Foreground(p.Base).
		Background(p.Text).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center)
	if a.loading {
		submitStyle = submitStyle.Background(p.Muted)
	}
	submit := zone.Mark(ZoneAuthSubmit, submitStyle.Render(submitLabel))

	toggle := zone.Mark(ZoneAuthToggle, center.Foreground(p.Subtle).Render(strings.ToUpper(a.ToggleLabel())))

	rows := []string{closeRow, title, subtitle, "", oauth, separator, "", a.form.View(), ""}
	if a.errMsg != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(p.Love).Width(inner).Render(a.errMsg))
	}
	rows = append(rows, submit, "", toggle)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Background(p.Surface).
		Padding(0, 2).
		Width(authWidth - 2).
		Render(strings.Join(rows, "\n"))
}
