package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds the environment variables that override the files.
// Unset variables leave the loaded value alone.
type envOverrides struct {
	IdentityURL   string `env:"CODEX_IDENTITY_URL"`
	AnonKey       string `env:"CODEX_ANON_KEY"`
	OAuthProvider string `env:"CODEX_OAUTH_PROVIDER"`
	CallbackPort  *int   `env:"CODEX_CALLBACK_PORT"`
	Telemetry     *bool  `env:"CODEX_TELEMETRY"`
}

// ApplyEnv overlays CODEX_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.IdentityURL != "" {
		cfg.IdentityURL = o.IdentityURL
	}
	if o.AnonKey != "" {
		cfg.AnonKey = o.AnonKey
	}
	if o.OAuthProvider != "" {
		cfg.OAuthProvider = o.OAuthProvider
	}
	if o.CallbackPort != nil {
		cfg.CallbackPort = *o.CallbackPort
	}
	if o.Telemetry != nil {
		cfg.TelemetryEnabled = o.Telemetry
	}
	return nil
}
