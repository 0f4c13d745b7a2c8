package overlay

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestToasts() (*ToastManager, *fakeClock) {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	tm := NewToastManager(&s)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	tm.now = clock.now
	tm.SetSize(120, 40)
	return tm, clock
}

func tickUntil(tm *ToastManager, clock *fakeClock, done func() bool) {
	for i := 0; i < 1000 && !done(); i++ {
		clock.advance(ToastFrame)
		tm.Tick()
	}
}

func TestToast_LifecycleSlidesInAndOut(t *testing.T) {
	tm, clock := newTestToasts()
	id := tm.Info("Welcome back.")
	require.True(t, tm.HasActiveToasts())
	require.Len(t, tm.toasts, 1)
	assert.Equal(t, id, tm.toasts[0].ID)
	assert.Equal(t, PhaseSlidingIn, tm.toasts[0].Phase)

	xStart, _ := tm.GetPosition()
	tickUntil(tm, clock, func() bool { return tm.toasts[0].Phase == PhaseVisible })
	require.Equal(t, PhaseVisible, tm.toasts[0].Phase)
	xRest, y := tm.GetPosition()
	assert.Less(t, xRest, xStart)
	assert.Equal(t, 1, y)

	clock.advance(InfoDismissAfter)
	tm.Tick()
	require.Equal(t, PhaseSlidingOut, tm.toasts[0].Phase)

	tickUntil(tm, clock, func() bool { return !tm.HasActiveToasts() })
	assert.False(t, tm.HasActiveToasts())
	assert.Empty(t, tm.View())
}

func TestToast_LoadingStaysUntilResolved(t *testing.T) {
	tm, clock := newTestToasts()
	id := tm.Loading("Authenticating...")
	tickUntil(tm, clock, func() bool { return tm.toasts[0].Phase == PhaseVisible })

	clock.advance(time.Minute)
	tm.Tick()
	assert.Equal(t, PhaseVisible, tm.toasts[0].Phase)

	tm.Resolve(id, ToastSuccess, "Welcome back.")
	assert.Equal(t, ToastSuccess, tm.toasts[0].Type)
	assert.Equal(t, SuccessDismissAfter, tm.toasts[0].Duration)
	assert.Contains(t, ansi.Strip(tm.View()), "Welcome back.")

	tm.Resolve("toast-missing", ToastError, "ignored")
	assert.Equal(t, "Welcome back.", tm.toasts[0].Message)
}

func TestToast_DuplicatesCollapse(t *testing.T) {
	tm, _ := newTestToasts()
	a := tm.Error("An unexpected error occurred.")
	b := tm.Error("An unexpected error occurred.")
	assert.Equal(t, a, b)
	assert.Len(t, tm.toasts, 1)
}

func TestToast_CapEvictsOldestNonLoading(t *testing.T) {
	tm, _ := newTestToasts()
	loading := tm.Loading("working")
	for i := range MaxToasts {
		tm.Info(strings.Repeat("x", i+1))
	}
	require.Len(t, tm.toasts, MaxToasts)
	assert.Equal(t, loading, tm.toasts[0].ID)
	assert.Equal(t, "xx", tm.toasts[1].Message)
}

func TestToast_WidthIsClamped(t *testing.T) {
	assert.Equal(t, MinToastWidth, calcToastWidth("hi"))
	assert.Equal(t, MaxToastWidth, calcToastWidth(strings.Repeat("w", 200)))
}

func TestToast_ViewShowsIcons(t *testing.T) {
	tm, _ := newTestToasts()
	tm.Success("saved")
	tm.Error("failed")
	out := ansi.Strip(tm.View())
	assert.Contains(t, out, "✓ saved")
	assert.Contains(t, out, "✗ failed")
}
