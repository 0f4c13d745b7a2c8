package overlay

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/kastheco/codex/ui/palette"
)

type rendererKey struct {
	width int
	dark  bool
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

func markdownRenderer(width int, dark bool) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	key := rendererKey{width: width, dark: dark}
	if r, ok := renderers[key]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle(dark)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = r
	return r
}

func markdownStyle(dark bool) glamouransi.StyleConfig {
	base := styles.LightStyleConfig
	if dark {
		base = styles.DarkStyleConfig
	}
	// Spacing comes from the overlay border, not the document margins.
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	return base
}

// RenderMarkdown renders md for the current theme at width columns. If
// glamour fails the source is returned as is.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimRight(md, "\n")
	if md == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := markdownRenderer(width, palette.Current().Name == palette.Moon.Name)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	out = xansi.Hardwrap(strings.TrimRight(out, "\n"), width, true)
	return strings.TrimRight(out, "\n")
}

const maxHelpWidth = 76

// HelpOverlay shows the key reference. Any key closes it.
type HelpOverlay struct {
	markdown string
	width    int
}

func NewHelpOverlay(markdown string) *HelpOverlay {
	return &HelpOverlay{markdown: markdown, width: maxHelpWidth}
}

// SetWidth fits the overlay into a terminal of the given width.
func (h *HelpOverlay) SetWidth(width int) {
	h.width = clampInt(width-4, 20, maxHelpWidth)
}

// HandleKeyPress reports whether the overlay should close.
func (h *HelpOverlay) HandleKeyPress(tea.KeyMsg) bool {
	return true
}

func (h *HelpOverlay) Render() string {
	p := palette.Current()
	body := RenderMarkdown(h.markdown, h.width-4)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Iris).
		Background(p.Surface).
		Padding(0, 1).
		Width(h.width).
		Render(body)
}
