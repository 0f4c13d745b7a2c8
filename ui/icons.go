package ui

// Nerd Font glyphs for catalog icon ids.
var icons = map[string]string{
	"briefcase":     "\uf0b1",
	"dollar-sign":   "\uf155",
	"rocket":        "\uf135",
	"pen-tool":      "\uf040",
	"user":          "\uf007",
	"book-open":     "\uf02d",
	"award":         "\uf091",
	"share":         "\uf1e0",
	"search":        "\uf002",
	"file-text":     "\uf15c",
	"target":        "\uf140",
	"git-branch":    "\ue725",
	"facebook":      "\uf09a",
	"mouse-pointer": "\uf245",
	"filter":        "\uf0b0",
	"magnet":        "\uf076",
	"monitor":       "\uf108",
	"layout":        "\uf009",
	"mail":          "\uf0e0",
	"trending-up":   "\uf201",
	"bar-chart":     "\uf080",
	"lock":          "\uf023",
	"external":      "\uf08e",
}

const fallbackIcon = "◆"

// Icon returns the glyph for an icon id, or a neutral diamond when the id is
// unknown.
func Icon(id string) string {
	if g, ok := icons[id]; ok {
		return g
	}
	return fallbackIcon
}
