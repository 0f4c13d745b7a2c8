package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kastheco/codex/config"
)

func TestFor(t *testing.T) {
	assert.Equal(t, "moon", For(config.ThemeDark).Name)
	assert.Equal(t, "dawn", For(config.ThemeLight).Name)
	assert.Equal(t, "dawn", For("").Name)
}

func TestApply(t *testing.T) {
	t.Cleanup(func() { Set(Dawn) })

	p := Apply(config.ThemeDark)
	assert.Equal(t, Moon, p)
	assert.Equal(t, Moon, Current())

	Apply(config.ThemeLight)
	assert.Equal(t, Dawn, Current())
}

func TestPalettesDiffer(t *testing.T) {
	assert.NotEqual(t, Moon.Base, Dawn.Base)
	assert.NotEqual(t, Moon.Text, Dawn.Text)
}
