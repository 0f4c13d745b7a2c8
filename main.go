package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kastheco/codex/app"
	cmd2 "github.com/kastheco/codex/cmd"
	"github.com/kastheco/codex/config"
	sentrypkg "github.com/kastheco/codex/internal/sentry"
	"github.com/kastheco/codex/log"
	"github.com/kastheco/codex/session"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:           "codex",
		Short:         "codex - a terminal directory of AI assistant modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := config.LoadConfig()
			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize(cfg.IsTelemetryEnabled())
			defer log.Close()

			dbPath, err := config.DBPath()
			if err != nil {
				return err
			}
			prefs, err := cmd2.OpenPrefs(dbPath)
			if err != nil {
				return err
			}
			defer prefs.Close()

			client, closeStore, err := cmd2.OpenIdentity(cfg, dbPath)
			if err != nil {
				return err
			}
			defer closeStore()

			sentrypkg.SetContext(cfg.IdentityHost(), string(config.LoadTheme(prefs)))

			refreshCtx, cancelRefresh := context.WithCancel(ctx)
			defer cancelRefresh()
			go client.AutoRefresh(refreshCtx)

			observer := session.NewObserver(client)
			observer.Start(ctx)
			defer observer.Close()

			return app.Run(ctx, app.Deps{
				Config:   cfg,
				Identity: client,
				Observer: observer,
				Prefs:    prefs,
			})
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			dbPath, err := config.DBPath()
			if err != nil {
				return err
			}
			configJson, _ := json.MarshalIndent(redacted(cfg), "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("Database: %s\n", dbPath)
			fmt.Printf("Log: %s\n", log.Path())
			if err := cfg.Validate(); err != nil {
				fmt.Printf("Identity: %v\n", err)
			}

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of codex",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("codex version %s\n", version)
			fmt.Printf("https://github.com/kastheco/codex/releases/tag/v%s\n", version)
		},
	}
)

// redacted returns a copy of cfg that is safe to print.
func redacted(cfg *config.Config) config.Config {
	out := *cfg
	if out.AnonKey != "" {
		out.AnonKey = "(set)"
	}
	return out
}

func init() {
	rootCmd.AddCommand(cmd2.NewModulesCmd())
	rootCmd.AddCommand(cmd2.NewOpenCmd())
	rootCmd.AddCommand(cmd2.NewStatusCmd())
	rootCmd.AddCommand(cmd2.NewSignOutCmd())
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
