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

func tabBorderWithBottom(left, middle, right string) lipgloss.Border {
	border := lipgloss.RoundedBorder()
	border.BottomLeft = left
	border.Bottom = middle
	border.BottomRight = right
	return border
}

var (
	inactiveTabBorder = tabBorderWithBottom("┴", "─", "┴")
	activeTabBorder   = tabBorderWithBottom("┘", " ", "└")
)

// minTabWidth is the narrowest bordered tab; below it the bar falls back to
// a plain row of labels.
const minTabWidth = 14

// TabBar is the category tab row. Each tab shows how many items the current
// query leaves in that category.
type TabBar struct {
	categories []catalog.Category
	counts     map[catalog.Category]int
	active     int
	width      int
}

// NewTabBar creates a tab bar over the catalog categories with All selected.
func NewTabBar() *TabBar {
	return &TabBar{
		categories: catalog.Categories(),
		counts:     map[catalog.Category]int{},
	}
}

func (t *TabBar) SetWidth(width int) {
	t.width = width
}

// SetCounts recomputes per-tab counts for items under query.
func (t *TabBar) SetCounts(items []catalog.Item, query string) {
	for _, c := range t.categories {
		t.counts[c] = len(catalog.Visible(items, catalog.FilterState{Category: c, Query: query}))
	}
}

// Count returns the last computed count for c.
func (t *TabBar) Count(c catalog.Category) int {
	return t.counts[c]
}

// Active returns the selected category.
func (t *TabBar) Active() catalog.Category {
	return t.categories[t.active]
}

func (t *TabBar) ActiveIndex() int {
	return t.active
}

// SetActive selects tab idx. It reports false for an out-of-range index.
func (t *TabBar) SetActive(idx int) bool {
	if idx < 0 || idx >= len(t.categories) {
		return false
	}
	t.active = idx
	return true
}

// SetActiveCategory selects the tab for c.
func (t *TabBar) SetActiveCategory(c catalog.Category) bool {
	for i, cat := range t.categories {
		if cat == c {
			t.active = i
			return true
		}
	}
	return false
}

func (t *TabBar) Next() {
	t.active = (t.active + 1) % len(t.categories)
}

func (t *TabBar) Prev() {
	t.active = (t.active - 1 + len(t.categories)) % len(t.categories)
}

// TabAt returns the index of the tab under a mouse event.
func (t *TabBar) TabAt(msg tea.MouseMsg) (int, bool) {
	for i := range t.categories {
		if zone.Get(TabZoneID(i)).InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}

func (t *TabBar) label(c catalog.Category) string {
	return fmt.Sprintf("%s %d", strings.ToUpper(c.String()), t.counts[c])
}

func (t *TabBar) String() string {
	if t.width <= 0 {
		return ""
	}
	if t.width/len(t.categories) < minTabWidth {
		return t.compact()
	}

	p := palette.Current()
	inactiveStyle := lipgloss.NewStyle().
		Border(inactiveTabBorder, true).
		BorderForeground(p.Overlay).
		Foreground(p.Subtle).
		AlignHorizontal(lipgloss.Center)
	activeStyle := inactiveStyle.
		Border(activeTabBorder, true).
		BorderForeground(p.Accent).
		Foreground(p.Text).
		Bold(true)

	tabWidth := t.width / len(t.categories)
	lastTabWidth := t.width - tabWidth*(len(t.categories)-1)

	rendered := make([]string, 0, len(t.categories))
	for i, c := range t.categories {
		width := tabWidth
		if i == len(t.categories)-1 {
			width = lastTabWidth
		}

		isFirst, isLast, isActive := i == 0, i == len(t.categories)-1, i == t.active
		style := inactiveStyle
		if isActive {
			style = activeStyle
		}
		border, _, _, _, _ := style.GetBorder()
		if isFirst && isActive {
			border.BottomLeft = "│"
		} else if isFirst {
			border.BottomLeft = "├"
		} else if isLast && isActive {
			border.BottomRight = "│"
		} else if isLast {
			border.BottomRight = "┤"
		}
		style = style.Border(border)
		style = style.Width(width - style.GetHorizontalFrameSize())

		text := t.label(c)
		if isActive {
			text = GradientText(text, p.GradientStart, p.GradientEnd)
		}
		rendered = append(rendered, zone.Mark(TabZoneID(i), style.Render(text)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (t *TabBar) compact() string {
	p := palette.Current()
	sep := lipgloss.NewStyle().Foreground(p.Overlay).Render(" │ ")
	parts := make([]string, 0, len(t.categories))
	for i, c := range t.categories {
		style := lipgloss.NewStyle().Foreground(p.Subtle)
		if i == t.active {
			style = style.Foreground(p.Accent).Bold(true).Underline(true)
		}
		parts = append(parts, zone.Mark(TabZoneID(i), style.Render(t.label(c))))
	}
	return lipgloss.PlaceHorizontal(t.width, lipgloss.Center, strings.Join(parts, sep))
}
