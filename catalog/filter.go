package catalog

import "strings"

// FilterState is the active tab and free-text query. The zero value selects
// every item.
type FilterState struct {
	Category Category
	Query    string
}

// NewFilterState returns the default state: the All tab and an empty query.
func NewFilterState() FilterState {
	return FilterState{Category: CategoryAll}
}

func (s FilterState) matchesCategory(it Item) bool {
	if s.Category == "" || s.Category == CategoryAll {
		return true
	}
	return it.Category == s.Category
}

// Visible returns the items that pass both the category and the query
// predicates, in their original relative order. The query is matched as a
// case-insensitive substring of the item name only.
func Visible(items []Item, state FilterState) []Item {
	query := strings.ToLower(state.Query)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !state.matchesCategory(it) {
			continue
		}
		if !strings.Contains(strings.ToLower(it.Name), query) {
			continue
		}
		out = append(out, it)
	}
	return out
}
