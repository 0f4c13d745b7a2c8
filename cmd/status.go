package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kastheco/codex/auth"
)

// executeStatus prints who is signed in against which identity host.
func executeStatus(ctx context.Context, w io.Writer, identity auth.Identity, host string) error {
	snap, err := currentSnapshot(ctx, identity)
	if err != nil {
		return err
	}
	if snap.Authenticated() {
		_, err = fmt.Fprintf(w, "%s %s (%s)\n", color.GreenString("secured"), snap.Email, host)
	} else {
		_, err = fmt.Fprintf(w, "%s anonymous (%s)\n", color.YellowString("locked"), host)
	}
	return err
}

// executeSignOut ends the cached session. Signing out while anonymous is a
// no-op.
func executeSignOut(ctx context.Context, w io.Writer, identity auth.Identity) error {
	snap, err := currentSnapshot(ctx, identity)
	if err != nil {
		return err
	}
	if !snap.Authenticated() {
		_, err = fmt.Fprintln(w, "not signed in")
		return err
	}
	if err := identity.SignOut(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	_, err = fmt.Fprintf(w, "signed out %s\n", snap.Email)
	return err
}

// NewStatusCmd builds the `codex status` command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, closeStore, err := identityFromConfig()
			if err != nil {
				return err
			}
			defer closeStore()
			return executeStatus(cmd.Context(), cmd.OutOrStdout(), client, cfg.IdentityHost())
		},
	}
}

// NewSignOutCmd builds the `codex signout` command.
func NewSignOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "signout",
		Aliases: []string{"disconnect"},
		Short:   "end the current session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, closeStore, err := identityFromConfig()
			if err != nil {
				return err
			}
			defer closeStore()
			return executeSignOut(cmd.Context(), cmd.OutOrStdout(), client)
		},
	}
}
