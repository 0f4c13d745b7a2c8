package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kastheco/codex/auth"
	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/gate"
	"github.com/kastheco/codex/internal/browser"
	"github.com/kastheco/codex/session"
)

// ErrSignInRequired is returned when a gated action runs without a session.
var ErrSignInRequired = errors.New("sign in required: run codex and press a to authenticate")

// currentSnapshot asks the identity service for the cached session.
func currentSnapshot(ctx context.Context, identity auth.Identity) (session.Snapshot, error) {
	sess, err := identity.GetSession(ctx)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to read session: %w", err)
	}
	return session.FromSession(sess), nil
}

// executeOpen runs the named module through the gate and opens its link.
func executeOpen(ctx context.Context, w io.Writer, name string, identity auth.Identity, open browser.Opener) error {
	item, ok := catalog.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown module %q (see codex modules)", name)
	}
	snap, err := currentSnapshot(ctx, identity)
	if err != nil {
		return err
	}
	action := gate.Activate(item, snap)
	if action.Kind == gate.PromptAuth {
		return ErrSignInRequired
	}
	if err := open(action.URL); err != nil {
		return fmt.Errorf("failed to open %s: %w", item.Name, err)
	}
	_, err = fmt.Fprintf(w, "opened %s\n", item.Name)
	return err
}

// NewOpenCmd builds the `codex open` command.
func NewOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <module>",
		Short: "open a module in the browser (requires sign-in)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, closeStore, err := identityFromConfig()
			if err != nil {
				return err
			}
			defer closeStore()
			return executeOpen(cmd.Context(), cmd.OutOrStdout(), args[0], client, browser.Open)
		},
	}
}
