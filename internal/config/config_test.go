package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SPEND_TEST_DIR", "/var/tmp/spend")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde prefix", "~/ledger/spend.db", filepath.Join(home, "ledger", "spend.db")},
		{"env var", "$SPEND_TEST_DIR/spend.db", "/var/tmp/spend/spend.db"},
		{"absolute", "/etc/spend.yaml", "/etc/spend.yaml"},
		{"tilde user untouched", "~other/file", "~other/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CONFIG_HOME", "/conf")
	assert.Equal(t, "/data/spend/spend.db", DefaultDatabasePath())
	assert.Equal(t, "/conf/spend", ConfigDir())

	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "spend", "spend.db"), DefaultDatabasePath())
	assert.Equal(t, filepath.Join(home, ".config", "spend"), ConfigDir())
}

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Run("viper values win", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		clearSheetsEnv(t)
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")

		viper.Set("sheets.client_id", "viper-client")
		viper.Set("sheets.client_secret", "secret")
		viper.Set("sheets.refresh_token", "token")
		viper.Set("sheets.spreadsheet_name", "Household")
		viper.Set("sheets.retry_delay", "2s")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "viper-client", cfg.ClientID)
		assert.Equal(t, "Household", cfg.SpreadsheetName)
		assert.Equal(t, 2*time.Second, cfg.RetryDelay)
		assert.Equal(t, 3, cfg.RetryAttempts)
	})

	t.Run("environment fallback", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		clearSheetsEnv(t)
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/keys/sa.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "From Env")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "From Env", cfg.SpreadsheetName)
	})

	t.Run("no credentials", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		clearSheetsEnv(t)

		_, err := LoadSheetsConfig()
		assert.Error(t, err)
	})
}
