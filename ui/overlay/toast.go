package overlay

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kastheco/codex/ui/palette"
)

// ToastType identifies the kind of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
	ToastLoading
)

// AnimPhase is where a toast is in its lifetime.
type AnimPhase int

const (
	PhaseSlidingIn AnimPhase = iota
	PhaseVisible
	PhaseSlidingOut
	PhaseDone
)

const (
	InfoDismissAfter    = 3 * time.Second
	SuccessDismissAfter = 3 * time.Second
	ErrorDismissAfter   = 5 * time.Second

	MinToastWidth = 30
	MaxToastWidth = 60
	MaxToasts     = 5

	// ToastFrame is the interval between ToastTickMsg frames.
	ToastFrame = 50 * time.Millisecond
)

var idCounter atomic.Uint64

type toast struct {
	ID         string
	Type       ToastType
	Message    string
	Phase      AnimPhase
	PhaseStart time.Time
	Duration   time.Duration // 0 = sticky until resolved
	Width      int

	// offset is how many columns the toast sits right of its resting place.
	offset   float64
	velocity float64
}

// calcToastWidth sizes a toast to its message: icon, space, text, padding and border.
func calcToastWidth(msg string) int {
	return clampInt(2+1+runewidth.StringWidth(msg)+4, MinToastWidth, MaxToastWidth)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToastManager owns the stack of notifications in the top right corner.
// Toasts slide in and out on a harmonica spring stepped by Tick.
type ToastManager struct {
	toasts  []*toast
	spinner *spinner.Model
	spring  harmonica.Spring
	width   int
	height  int
	now     func() time.Time
}

// NewToastManager creates a manager that draws loading toasts with s.
func NewToastManager(s *spinner.Model) *ToastManager {
	return &ToastManager{
		spinner: s,
		spring:  harmonica.NewSpring(harmonica.FPS(int(time.Second/ToastFrame)), 9.0, 0.9),
		now:     time.Now,
	}
}

// SetSize updates the viewport used for positioning.
func (tm *ToastManager) SetSize(width, height int) {
	tm.width = width
	tm.height = height
}

func (tm *ToastManager) Info(msg string) string {
	return tm.addToast(ToastInfo, msg, InfoDismissAfter)
}

func (tm *ToastManager) Success(msg string) string {
	return tm.addToast(ToastSuccess, msg, SuccessDismissAfter)
}

func (tm *ToastManager) Error(msg string) string {
	return tm.addToast(ToastError, msg, ErrorDismissAfter)
}

// Loading creates a toast that stays until Resolve is called with its ID.
func (tm *ToastManager) Loading(msg string) string {
	return tm.addToast(ToastLoading, msg, 0)
}

func dismissAfter(typ ToastType) time.Duration {
	switch typ {
	case ToastError:
		return ErrorDismissAfter
	case ToastInfo:
		return InfoDismissAfter
	default:
		return SuccessDismissAfter
	}
}

// Resolve turns the toast with id into typ with a new message. Unknown IDs
// are ignored.
func (tm *ToastManager) Resolve(id string, typ ToastType, msg string) {
	for _, t := range tm.toasts {
		if t.ID != id {
			continue
		}
		t.Type = typ
		t.Message = msg
		t.Width = calcToastWidth(msg)
		t.Duration = dismissAfter(typ)
		if t.Phase != PhaseSlidingIn {
			t.Phase = PhaseVisible
		}
		t.PhaseStart = tm.now()
		return
	}
}

// HasActiveToasts reports whether anything still needs ticking.
func (tm *ToastManager) HasActiveToasts() bool {
	for _, t := range tm.toasts {
		if t.Phase != PhaseDone {
			return true
		}
	}
	return false
}

func nextID() string {
	return fmt.Sprintf("toast-%d", idCounter.Add(1))
}

func (tm *ToastManager) addToast(typ ToastType, msg string, duration time.Duration) string {
	now := tm.now()

	// A repeat of a live toast restarts its timer instead of stacking.
	for _, t := range tm.toasts {
		if t.Type == typ && t.Message == msg && (t.Phase == PhaseSlidingIn || t.Phase == PhaseVisible) {
			t.PhaseStart = now
			return t.ID
		}
	}

	t := &toast{
		ID:         nextID(),
		Type:       typ,
		Message:    msg,
		Phase:      PhaseSlidingIn,
		PhaseStart: now,
		Duration:   duration,
		Width:      calcToastWidth(msg),
	}
	t.offset = float64(t.Width + 4)

	tm.enforceMaxToasts()
	tm.toasts = append(tm.toasts, t)
	return t.ID
}

// ToastTickMsg drives one animation frame while toasts are active.
type ToastTickMsg struct{}

// settled reports whether a spring has come to rest at target.
func settled(pos, vel, target float64) bool {
	d := pos - target
	return d < 0.5 && d > -0.5 && vel < 0.5 && vel > -0.5
}

// Tick advances every toast by one frame and drops finished ones.
func (tm *ToastManager) Tick() {
	now := tm.now()
	alive := tm.toasts[:0]
	for _, t := range tm.toasts {
		switch t.Phase {
		case PhaseSlidingIn:
			t.offset, t.velocity = tm.spring.Update(t.offset, t.velocity, 0)
			if settled(t.offset, t.velocity, 0) {
				t.offset, t.velocity = 0, 0
				t.Phase = PhaseVisible
				t.PhaseStart = now
			}
		case PhaseVisible:
			if t.Duration > 0 && now.Sub(t.PhaseStart) >= t.Duration {
				t.Phase = PhaseSlidingOut
				t.PhaseStart = now
			}
		case PhaseSlidingOut:
			target := float64(t.Width + 4)
			t.offset, t.velocity = tm.spring.Update(t.offset, t.velocity, target)
			if t.offset >= target-0.5 {
				t.Phase = PhaseDone
			}
		}
		if t.Phase == PhaseDone {
			continue
		}
		alive = append(alive, t)
	}
	tm.toasts = alive
}

// enforceMaxToasts makes room for one more, evicting the oldest non-loading
// toast first.
func (tm *ToastManager) enforceMaxToasts() {
	for len(tm.toasts) >= MaxToasts {
		victim := 0
		for i, t := range tm.toasts {
			if t.Type != ToastLoading {
				victim = i
				break
			}
		}
		tm.toasts = append(tm.toasts[:victim], tm.toasts[victim+1:]...)
	}
}

func toastColor(typ ToastType) lipgloss.Color {
	p := palette.Current()
	switch typ {
	case ToastError:
		return p.Love
	case ToastLoading:
		return p.Gold
	default:
		return p.Foam
	}
}

func (tm *ToastManager) toastIcon(typ ToastType) string {
	style := lipgloss.NewStyle().Foreground(toastColor(typ))
	switch typ {
	case ToastSuccess:
		return style.Render("✓")
	case ToastError:
		return style.Render("✗")
	case ToastLoading:
		if tm.spinner != nil {
			return style.Render(tm.spinner.View())
		}
		return style.Render("…")
	default:
		return style.Render("▸")
	}
}

func (tm *ToastManager) renderToast(t *toast) string {
	p := palette.Current()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(toastColor(t.Type)).
		Foreground(p.Text).
		Padding(0, 1).
		Width(t.Width).
		Render(tm.toastIcon(t.Type) + " " + t.Message)
}

// View renders the live toasts stacked and right-aligned.
func (tm *ToastManager) View() string {
	var rendered []string
	for _, t := range tm.toasts {
		if t.Phase == PhaseDone {
			continue
		}
		rendered = append(rendered, tm.renderToast(t))
	}
	if len(rendered) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// GetPosition returns where View should be placed over the page.
func (tm *ToastManager) GetPosition() (int, int) {
	widest := MinToastWidth
	maxOffset := 0
	for _, t := range tm.toasts {
		if t.Phase == PhaseDone {
			continue
		}
		widest = max(widest, t.Width)
		maxOffset = max(maxOffset, int(t.offset+0.5))
	}
	x := max(0, tm.width-widest-4)
	return x + maxOffset, 1
}
