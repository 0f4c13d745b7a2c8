package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalKeyStringsMap_SearchShortcuts(t *testing.T) {
	if got, ok := GlobalKeyStringsMap["ctrl+k"]; !ok || got != KeySearch {
		t.Fatalf("GlobalKeyStringsMap[\"ctrl+k\"] = (%v, %v), want (%v, true)", got, ok, KeySearch)
	}
	assert.Equal(t, KeySearch, GlobalKeyStringsMap["/"])
	assert.Equal(t, KeyEsc, GlobalKeyStringsMap["esc"])
}

func TestGlobalKeyStringsMap_EveryNameHasBinding(t *testing.T) {
	for str, name := range GlobalKeyStringsMap {
		binding, ok := GlobalkeyBindings[name]
		if assert.True(t, ok, "no binding for %q", str) {
			assert.Contains(t, binding.Keys(), str, "binding for %q does not list it", str)
		}
	}
}

func TestCategoryIndex(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"1", 0},
		{"2", 1},
		{"3", 2},
		{"4", 3},
		{"5", 4},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			idx, ok := CategoryIndex(GlobalKeyStringsMap[tt.key])
			assert.True(t, ok)
			assert.Equal(t, tt.want, idx)
		})
	}

	_, ok := CategoryIndex(KeyQuit)
	assert.False(t, ok)
}

func TestGlobalKeyBindings_HelpLabels(t *testing.T) {
	if got := GlobalkeyBindings[KeyEnter].Help().Desc; got != "open" {
		t.Fatalf("KeyEnter help desc = %q, want %q", got, "open")
	}
	assert.Equal(t, "disconnect", GlobalkeyBindings[KeyDisconnect].Help().Desc)
	assert.Equal(t, "^k", GlobalkeyBindings[KeySearch].Help().Key)
}
