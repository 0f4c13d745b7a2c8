package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kastheco/codex/auth"
	"github.com/kastheco/codex/config"
)

// OpenIdentity builds an identity client for cfg whose session is cached in
// the SQLite database at dbPath. The returned close func releases the cache.
func OpenIdentity(cfg *config.Config, dbPath string) (*auth.Client, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	store, err := openSessionStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	client, err := auth.NewClient(auth.Options{
		BaseURL:      cfg.IdentityURL,
		APIKey:       cfg.AnonKey,
		Store:        store,
		CallbackPort: cfg.CallbackPort,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return client, func() { _ = store.Close() }, nil
}

func openSessionStore(dbPath string) (*auth.SQLiteSessionStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	store, err := auth.NewSQLiteSessionStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session cache: %w", err)
	}
	return store, nil
}

// OpenPrefs opens the preference store next to the session cache.
func OpenPrefs(dbPath string) (*config.SQLitePrefStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	prefs, err := config.NewSQLitePrefStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	return prefs, nil
}

// identityFromConfig loads the configuration and opens the identity client
// at the default database location.
func identityFromConfig() (*config.Config, *auth.Client, func(), error) {
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, nil, nil, err
	}
	cfg := config.LoadConfig()
	client, closeStore, err := OpenIdentity(cfg, dbPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, client, closeStore, nil
}
