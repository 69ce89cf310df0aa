package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/faultdesk/internal/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "faultdesk.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 128, cfg.Query.CacheSize)
	require.False(t, cfg.Seed)

	tag, err := cfg.Query.Language()
	require.NoError(t, err)
	require.Equal(t, language.Turkish, tag)

	loc, err := cfg.Query.Location()
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  path: /var/lib/faultdesk/faults.db
log:
  level: debug
query:
  locale: en
  timezone: UTC
  cache_size: 16
seed: true
`), 0o600))

	t.Setenv("FAULTDESK_CONFIG_PATH", path)
	t.Setenv("FAULTDESK_LOG_LEVEL", "warn")
	t.Setenv("FAULTDESK_CACHE_SIZE", "32")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/faultdesk/faults.db", cfg.DB.Path)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "en", cfg.Query.Locale)
	require.Equal(t, 32, cfg.Query.CacheSize)
	require.True(t, cfg.Seed)

	loc, err := cfg.Query.Location()
	require.NoError(t, err)
	require.Equal(t, "UTC", loc.String())
}

func TestLoad_InvalidEnv(t *testing.T) {
	cases := map[string]string{
		"FAULTDESK_CACHE_SIZE": "many",
		"FAULTDESK_SEED":       "sometimes",
		"FAULTDESK_TIMEZONE":   "Mars/Olympus",
		"FAULTDESK_LOCALE":     "not a locale!",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := config.Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("FAULTDESK_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := config.Load()
	require.Error(t, err)
}
