package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/ui/palette"
)

const (
	SearchPlaceholder = "Search Architecture..."
	NoResultsMessage  = "No modules match."

	maxSearchRows  = 8
	maxSearchWidth = 72
)

// SearchEvent is what a key press did to the search palette.
type SearchEvent int

const (
	SearchNone SearchEvent = iota
	SearchQueryChanged
	SearchActivate
	SearchClose
)

// SearchOverlay is the command palette: a query input over the live result
// list. The query is the same one the grid filters by.
type SearchOverlay struct {
	input   textinput.Model
	results []catalog.Item
	cursor  int
	offset  int
	width   int
	icon    func(string) string
}

// NewSearchOverlay opens the palette with query pre-filled. icon resolves
// catalog icon ids to glyphs.
func NewSearchOverlay(query string, icon func(string) string) *SearchOverlay {
	ti := textinput.New()
	ti.Placeholder = SearchPlaceholder
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.SetValue(query)
	ti.CursorEnd()
	ti.Focus()
	if icon == nil {
		icon = func(string) string { return "◆" }
	}
	return &SearchOverlay{input: ti, icon: icon, width: maxSearchWidth}
}

func (s *SearchOverlay) SetWidth(width int) {
	s.width = clampInt(width-4, 30, maxSearchWidth)
	s.input.Width = s.width - 12
}

// Query returns the current query text.
func (s *SearchOverlay) Query() string {
	return s.input.Value()
}

// SetResults replaces the result list. The cursor returns to the top when
// the query changed the set.
func (s *SearchOverlay) SetResults(items []catalog.Item) {
	s.results = items
	s.cursor = 0
	s.offset = 0
}

func (s *SearchOverlay) Results() []catalog.Item {
	return s.results
}

// Selected returns the highlighted result.
func (s *SearchOverlay) Selected() (catalog.Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.results) {
		return catalog.Item{}, false
	}
	return s.results[s.cursor], true
}

// SelectIndex highlights result idx.
func (s *SearchOverlay) SelectIndex(idx int) bool {
	if idx < 0 || idx >= len(s.results) {
		return false
	}
	s.cursor = idx
	s.scroll()
	return true
}

func (s *SearchOverlay) scroll() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+maxSearchRows {
		s.offset = s.cursor - maxSearchRows + 1
	}
}

// ResultAt returns the index of the result row under a mouse event.
func (s *SearchOverlay) ResultAt(msg tea.MouseMsg) (int, bool) {
	for i := s.offset; i < min(len(s.results), s.offset+maxSearchRows); i++ {
		if zone.Get(ResultZoneID(i)).InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}

// HandleKeyPress processes a key and reports what happened.
func (s *SearchOverlay) HandleKeyPress(msg tea.KeyMsg) SearchEvent {
	switch msg.Type {
	case tea.KeyEsc:
		return SearchClose
	case tea.KeyEnter:
		if _, ok := s.Selected(); ok {
			return SearchActivate
		}
		return SearchNone
	case tea.KeyUp, tea.KeyCtrlP:
		if s.cursor > 0 {
			s.cursor--
			s.scroll()
		}
		return SearchNone
	case tea.KeyDown, tea.KeyCtrlN:
		if s.cursor < len(s.results)-1 {
			s.cursor++
			s.scroll()
		}
		return SearchNone
	}

	before := s.input.Value()
	s.input, _ = s.input.Update(msg)
	if s.input.Value() != before {
		return SearchQueryChanged
	}
	return SearchNone
}

// Render returns the styled palette.
func (s *SearchOverlay) Render() string {
	p := palette.Current()
	inner := s.width - 4

	glyph := lipgloss.NewStyle().Foreground(p.Accent).Render("\uf002")
	closeBtn := zone.Mark(ZoneSearchExit, lipgloss.NewStyle().Foreground(p.Muted).Render("esc ✕"))
	input := s.input.View()
	gap := max(1, inner-lipgloss.Width(glyph)-2-lipgloss.Width(input)-lipgloss.Width(closeBtn))
	header := glyph + "  " + input + strings.Repeat(" ", gap) + closeBtn

	divider := lipgloss.NewStyle().Foreground(p.Overlay).Render(strings.Repeat("─", inner))

	rows := []string{header, divider}
	if len(s.results) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(p.Muted).Italic(true).Render(NoResultsMessage))
	}
	end := min(len(s.results), s.offset+maxSearchRows)
	for i := s.offset; i < end; i++ {
		it := s.results[i]
		iconStyle := lipgloss.NewStyle().Foreground(p.Muted)
		if i == s.cursor {
			iconStyle = iconStyle.Foreground(p.Accent)
		}
		row := iconStyle.Render(s.icon(it.Icon)) + "  " + lipgloss.NewStyle().Foreground(p.Text).Bold(true).Render(it.Name)
		if i == s.cursor {
			arrow := lipgloss.NewStyle().Foreground(p.Accent).Render("↗")
			row += strings.Repeat(" ", max(1, inner-lipgloss.Width(row)-1)) + arrow
			row = lipgloss.NewStyle().Background(p.Overlay).Width(inner).Render(row)
		}
		rows = append(rows, zone.Mark(ResultZoneID(i), row))
	}
	if len(s.results) > maxSearchRows {
		pos := fmt.Sprintf("%d/%d", s.cursor+1, len(s.results))
		more := lipgloss.NewStyle().Foreground(p.Muted).Width(inner).Align(lipgloss.Right).Render(pos)
		rows = append(rows, more)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Background(p.Surface).
		Padding(0, 1).
		Width(s.width - 2).
		Render(strings.Join(rows, "\n"))
}
