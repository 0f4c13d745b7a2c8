package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillBackground(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		height int
		want   int
	}{
		{"pads short output", "a\nb", 5, 5},
		{"trims tall output", "a\nb\nc\nd", 2, 2},
		{"zero height is a no-op", "a\nb", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FillBackground(tt.in, tt.height)
			assert.Equal(t, tt.want, strings.Count(got, "\n")+1)
		})
	}
}
