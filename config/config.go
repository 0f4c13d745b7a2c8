package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/kastheco/codex/log"
)

const (
	ConfigFileName = "config.json"
	DBFileName     = "codex.db"

	defaultOAuthProvider = "google"
	// defaultCallbackPort must match a redirect URL allowed by the identity
	// project, so it is fixed rather than ephemeral.
	defaultCallbackPort = 54330
)

// GetConfigDir returns the path to the application's configuration directory,
// ~/.config/codex.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "codex"), nil
}

// DBPath returns the location of the SQLite database holding the session
// cache and preferences.
func DBPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFileName), nil
}

// Config represents the application configuration
type Config struct {
	// IdentityURL is the identity service project URL, e.g. https://abc.supabase.co.
	IdentityURL string `json:"identity_url"`
	// AnonKey is the project's public API key.
	AnonKey string `json:"anon_key"`
	// OAuthProvider is the federated provider behind the "continue with" button.
	OAuthProvider string `json:"oauth_provider"`
	// CallbackPort is the loopback port that receives OAuth redirects.
	CallbackPort int `json:"callback_port"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OAuthProvider: defaultOAuthProvider,
		CallbackPort:  defaultCallbackPort,
	}
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

// IdentityConfigured reports whether enough is set to reach the identity
// service.
func (c *Config) IdentityConfigured() bool {
	return c.IdentityURL != "" && c.AnonKey != ""
}

// IdentityHost is the host part of IdentityURL, safe to show and report.
func (c *Config) IdentityHost() string {
	u, err := url.Parse(c.IdentityURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Validate checks the identity settings for obvious mistakes.
func (c *Config) Validate() error {
	if !c.IdentityConfigured() {
		return fmt.Errorf("identity service is not configured: set identity_url and anon_key in %s or CODEX_IDENTITY_URL and CODEX_ANON_KEY", ConfigFileName)
	}
	u, err := url.Parse(c.IdentityURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("identity_url %q is not an absolute URL", c.IdentityURL)
	}
	if c.CallbackPort < 0 || c.CallbackPort > 65535 {
		return fmt.Errorf("callback_port %d is out of range", c.CallbackPort)
	}
	return nil
}

// LoadConfig reads config.json (writing defaults on first run), then applies
// config.toml and finally environment overrides.
func LoadConfig() *Config {
	cfg := loadJSONConfig()

	tomlResult, tomlErr := LoadTOMLConfig()
	if tomlErr != nil {
		log.WarningLog.Printf("failed to load TOML config: %v", tomlErr)
	} else if tomlResult != nil {
		tomlResult.apply(cfg)
	}

	if err := ApplyEnv(cfg); err != nil {
		log.WarningLog.Printf("failed to read environment overrides: %v", err)
	}
	return cfg
}

func loadJSONConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	return config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0600)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
