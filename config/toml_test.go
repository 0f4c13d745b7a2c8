package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTOMLConfig(t *testing.T) {
	t.Run("parses identity table and telemetry", func(t *testing.T) {
		tomlPath := filepath.Join(t.TempDir(), "config.toml")
		content := `
telemetry_enabled = false

[identity]
url = "https://abc.supabase.co"
anon_key = "public-anon"
oauth_provider = "github"
callback_port = 0
`
		require.NoError(t, os.WriteFile(tomlPath, []byte(content), 0o644))

		tc, err := LoadTOMLConfigFrom(tomlPath)
		require.NoError(t, err)
		require.NotNil(t, tc.TelemetryEnabled)
		assert.False(t, *tc.TelemetryEnabled)
		assert.Equal(t, "https://abc.supabase.co", tc.Identity.URL)
		assert.Equal(t, "public-anon", tc.Identity.AnonKey)
		assert.Equal(t, "github", tc.Identity.OAuthProvider)

		cfg := DefaultConfig()
		tc.apply(cfg)
		assert.Equal(t, "https://abc.supabase.co", cfg.IdentityURL)
		assert.Equal(t, "github", cfg.OAuthProvider)
		assert.Equal(t, 0, cfg.CallbackPort, "an explicit zero picks an ephemeral port")
		assert.False(t, cfg.IsTelemetryEnabled())
	})

	t.Run("omitted keys keep existing values", func(t *testing.T) {
		tomlPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(tomlPath, []byte("[identity]\nanon_key = \"k\"\n"), 0o644))

		tc, err := LoadTOMLConfigFrom(tomlPath)
		require.NoError(t, err)

		cfg := &Config{IdentityURL: "https://keep.supabase.co", OAuthProvider: "google", CallbackPort: 54330}
		tc.apply(cfg)
		assert.Equal(t, "https://keep.supabase.co", cfg.IdentityURL)
		assert.Equal(t, "k", cfg.AnonKey)
		assert.Equal(t, 54330, cfg.CallbackPort)
		assert.Nil(t, cfg.TelemetryEnabled)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		tomlPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(tomlPath, []byte("[identity]\nurl = \"x\"\nsecret = \"y\"\n"), 0o644))

		_, err := LoadTOMLConfigFrom(tomlPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "identity.secret")
	})

	t.Run("returns error on missing file", func(t *testing.T) {
		_, err := LoadTOMLConfigFrom("/nonexistent/config.toml")
		assert.Error(t, err)
	})

	t.Run("missing default file is not an error", func(t *testing.T) {
		withHome(t)
		tc, err := LoadTOMLConfig()
		assert.NoError(t, err)
		assert.Nil(t, tc)
	})
}
