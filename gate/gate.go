// Package gate decides what activating a catalog item does for the current
// session. The check is advisory: module links are public URLs, so the gate
// shapes the experience and protects nothing.
package gate

import (
	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/session"
)

// Kind is the outcome of activating an item.
type Kind int

const (
	// PromptAuth asks the user to sign in first.
	PromptAuth Kind = iota
	// OpenExternal opens Action.URL outside the application.
	OpenExternal
)

func (k Kind) String() string {
	if k == OpenExternal {
		return "open"
	}
	return "prompt-auth"
}

// Action is what the caller should do next.
type Action struct {
	Kind Kind
	URL  string
}

// Allows reports whether snap may follow module links.
func Allows(snap session.Snapshot) bool {
	return snap.Authenticated()
}

// Activate returns OpenExternal with the item's URL for a signed-in
// session and PromptAuth otherwise, including while the session is still
// unknown.
func Activate(item catalog.Item, snap session.Snapshot) Action {
	if !Allows(snap) {
		return Action{Kind: PromptAuth}
	}
	return Action{Kind: OpenExternal, URL: item.URL}
}
