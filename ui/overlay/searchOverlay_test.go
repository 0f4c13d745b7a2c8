package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kastheco/codex/catalog"
)

func typeRunes(s string, handle func(tea.KeyMsg)) {
	for _, r := range s {
		handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func searchResults(query string) []catalog.Item {
	return catalog.Visible(catalog.List(), catalog.FilterState{Category: catalog.CategoryAll, Query: query})
}

func TestSearchOverlay_TypingChangesQuery(t *testing.T) {
	s := NewSearchOverlay("", nil)
	var events []SearchEvent
	typeRunes("seo", func(k tea.KeyMsg) { events = append(events, s.HandleKeyPress(k)) })

	assert.Equal(t, "seo", s.Query())
	for _, ev := range events {
		assert.Equal(t, SearchQueryChanged, ev)
	}
}

func TestSearchOverlay_PrefilledQuery(t *testing.T) {
	s := NewSearchOverlay("brand", nil)
	assert.Equal(t, "brand", s.Query())

	ev := s.HandleKeyPress(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, SearchQueryChanged, ev)
	assert.Equal(t, "bran", s.Query())
}

func TestSearchOverlay_EscCloses(t *testing.T) {
	s := NewSearchOverlay("x", nil)
	assert.Equal(t, SearchClose, s.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, "x", s.Query())
}

func TestSearchOverlay_EnterWithoutResultsDoesNothing(t *testing.T) {
	s := NewSearchOverlay("zzzz", nil)
	s.SetResults(nil)
	assert.Equal(t, SearchNone, s.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestSearchOverlay_CursorMovesAndClamps(t *testing.T) {
	s := NewSearchOverlay("", nil)
	all := searchResults("")
	s.SetResults(all)

	s.HandleKeyPress(tea.KeyMsg{Type: tea.KeyUp})
	it, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, all[0].Name, it.Name)

	s.HandleKeyPress(tea.KeyMsg{Type: tea.KeyDown})
	s.HandleKeyPress(tea.KeyMsg{Type: tea.KeyCtrlN})
	it, _ = s.Selected()
	assert.Equal(t, all[2].Name, it.Name)

	for range len(all) + 5 {
		s.HandleKeyPress(tea.KeyMsg{Type: tea.KeyDown})
	}
	it, _ = s.Selected()
	assert.Equal(t, all[len(all)-1].Name, it.Name)

	assert.Equal(t, SearchActivate, s.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestSearchOverlay_SetResultsResetsCursor(t *testing.T) {
	s := NewSearchOverlay("", nil)
	s.SetResults(searchResults(""))
	require.True(t, s.SelectIndex(3))

	s.SetResults(searchResults("brand"))
	it, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, searchResults("brand")[0].Name, it.Name)
	assert.False(t, s.SelectIndex(99))
}

func TestSearchOverlay_RenderShowsResultsAndEmptyState(t *testing.T) {
	s := NewSearchOverlay("", func(string) string { return "*" })
	s.SetWidth(100)
	s.SetResults(searchResults(""))
	out := ansi.Strip(s.Render())
	assert.Contains(t, out, catalog.List()[0].Name)
	assert.Contains(t, out, "esc")

	s.SetResults(nil)
	out = ansi.Strip(s.Render())
	assert.Contains(t, out, NoResultsMessage)
}
