package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const TOMLConfigFileName = "config.toml"

// TOMLConfig is the optional hand-edited overlay. Fields left out of the
// file keep their JSON values.
type TOMLConfig struct {
	TelemetryEnabled *bool        `toml:"telemetry_enabled"`
	Identity         TOMLIdentity `toml:"identity"`
	meta             toml.MetaData
}

// TOMLIdentity is the [identity] table.
type TOMLIdentity struct {
	URL           string `toml:"url"`
	AnonKey       string `toml:"anon_key"`
	OAuthProvider string `toml:"oauth_provider"`
	CallbackPort  int    `toml:"callback_port"`
}

// LoadTOMLConfig reads config.toml from the config directory. It returns
// (nil, nil) when the file does not exist.
func LoadTOMLConfig() (*TOMLConfig, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, TOMLConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadTOMLConfigFrom(path)
}

// LoadTOMLConfigFrom parses the TOML file at path.
func LoadTOMLConfigFrom(path string) (*TOMLConfig, error) {
	var tc TOMLConfig
	md, err := toml.DecodeFile(path, &tc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	tc.meta = md
	return &tc, nil
}

func (tc *TOMLConfig) apply(cfg *Config) {
	if tc.TelemetryEnabled != nil {
		cfg.TelemetryEnabled = tc.TelemetryEnabled
	}
	if tc.Identity.URL != "" {
		cfg.IdentityURL = tc.Identity.URL
	}
	if tc.Identity.AnonKey != "" {
		cfg.AnonKey = tc.Identity.AnonKey
	}
	if tc.Identity.OAuthProvider != "" {
		cfg.OAuthProvider = tc.Identity.OAuthProvider
	}
	if tc.meta.IsDefined("identity", "callback_port") {
		cfg.CallbackPort = tc.Identity.CallbackPort
	}
}
