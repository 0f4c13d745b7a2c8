package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/ui/palette"
)

// EmptyGridMessage is shown when the filter leaves nothing visible.
const EmptyGridMessage = "No modules match this protocol."

// Columns returns how many cards fit side by side in width.
func Columns(width int) int {
	return max(1, min(MaxColumns, width/MinCardWidth))
}

// Grid lays out the visible modules as cards and tracks the selected one.
type Grid struct {
	items    []catalog.Item
	selected int
	offset   int // first visible row
	unlocked bool

	width, height int
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.scrollToSelected()
}

// SetUnlocked switches the cards between the secured and unlocked look.
func (g *Grid) SetUnlocked(unlocked bool) {
	g.unlocked = unlocked
}

// SetItems replaces the visible set. The selection follows the previously
// selected item by name when it is still present, otherwise it resets to
// the first card.
func (g *Grid) SetItems(items []catalog.Item) {
	prev, hadPrev := g.Selected()
	g.items = items
	g.selected = 0
	if hadPrev {
		for i, it := range items {
			if it.Name == prev.Name {
				g.selected = i
				break
			}
		}
	}
	g.scrollToSelected()
}

// Items returns the visible set.
func (g *Grid) Items() []catalog.Item {
	return g.items
}

// Selected returns the selected item, if any.
func (g *Grid) Selected() (catalog.Item, bool) {
	if g.selected < 0 || g.selected >= len(g.items) {
		return catalog.Item{}, false
	}
	return g.items[g.selected], true
}

func (g *Grid) SelectedIndex() int {
	return g.selected
}

// Select moves the selection to idx. It reports false when idx is out of range.
func (g *Grid) Select(idx int) bool {
	if idx < 0 || idx >= len(g.items) {
		return false
	}
	g.selected = idx
	g.scrollToSelected()
	return true
}

// Move shifts the selection by dx columns and dy rows, clamped to the grid.
func (g *Grid) Move(dx, dy int) {
	if len(g.items) == 0 {
		return
	}
	cols := Columns(g.width)
	row, col := g.selected/cols, g.selected%cols

	col += dx
	if col < 0 || col >= cols {
		// Wrap horizontally into the neighbouring row.
		g.Select(clampIndex(g.selected+dx, len(g.items)))
		return
	}
	row += dy
	idx := row*cols + col
	if idx < 0 {
		idx = col
	}
	g.Select(clampIndex(idx, len(g.items)))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// visibleRows is how many card rows fit in the grid height, keeping one
// line for the scroll hint.
func (g *Grid) visibleRows() int {
	return max(1, (g.height-1)/CardHeight)
}

func (g *Grid) scrollToSelected() {
	cols := Columns(g.width)
	row := g.selected / cols
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
	totalRows := (len(g.items) + cols - 1) / cols
	if g.offset > max(0, totalRows-rows) {
		g.offset = max(0, totalRows-rows)
	}
}

// CardAt returns the index of the card under a mouse event.
func (g *Grid) CardAt(msg tea.MouseMsg) (int, bool) {
	for i := range g.items {
		if zone.Get(CardZoneID(i)).InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}

func (g *Grid) String() string {
	if g.width <= 0 || g.height <= 0 {
		return ""
	}
	if len(g.items) == 0 {
		msg := lipgloss.NewStyle().Foreground(palette.Current().Muted).Italic(true).Render(EmptyGridMessage)
		return lipgloss.Place(g.width, min(g.height, CardHeight), lipgloss.Center, lipgloss.Center, msg)
	}

	cols := Columns(g.width)
	cardWidth := g.width / cols
	rows := make([]string, 0, g.visibleRows())
	for r := g.offset; r < g.offset+g.visibleRows(); r++ {
		start := r * cols
		if start >= len(g.items) {
			break
		}
		cards := make([]string, 0, cols)
		for i := start; i < min(start+cols, len(g.items)); i++ {
			card := renderCard(g.items[i], i, cardWidth, g.unlocked, i == g.selected)
			cards = append(cards, zone.Mark(CardZoneID(i), card))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	out := strings.Join(rows, "\n")
	totalRows := (len(g.items) + cols - 1) / cols
	if totalRows > g.visibleRows() {
		more := lipgloss.NewStyle().Foreground(palette.Current().Muted).
			Render(scrollHint(g.offset, g.visibleRows(), totalRows))
		out += "\n" + lipgloss.PlaceHorizontal(g.width, lipgloss.Right, more)
	}
	return out
}

func scrollHint(offset, visible, total int) string {
	hint := fmt.Sprintf("rows %d-%d of %d", offset+1, min(offset+visible, total), total)
	if offset > 0 {
		hint = "↑ " + hint
	}
	if offset+visible < total {
		hint += " ↓"
	}
	return hint
}
