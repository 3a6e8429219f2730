package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-tracker/internal/common"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadAPI_Defaults(t *testing.T) {
	cfg, err := LoadAPI(newViper())
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "http://localhost:8001/api", cfg.BaseURL())
}

func TestLoadAPI(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		timeout string
		wantErr error
		wantURL string
	}{
		{"trailing slash trimmed", "https://money.example.com/", "", nil, "https://money.example.com/api"},
		{"timeout parsed", "https://money.example.com", "15s", nil, "https://money.example.com/api"},
		{"missing url", " ", "", common.ErrMissingConfig, ""},
		{"bad scheme", "money.example.com", "", common.ErrInvalidConfig, ""},
		{"negative timeout", "http://x", "-1s", common.ErrInvalidConfig, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set("api.backend_url", tt.url)
			if tt.timeout != "" {
				v.Set("api.timeout", tt.timeout)
			}

			cfg, err := LoadAPI(v)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, cfg.BaseURL())
		})
	}
}

func TestStoragePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	v := newViper()
	v.Set("storage.path", "~/money/state.db")
	assert.Equal(t, filepath.Join(home, "money/state.db"), StoragePath(v))

	t.Setenv("MONEY_TEST_DIR", "/tmp/money-test")
	v.Set("storage.path", "$MONEY_TEST_DIR/state.db")
	assert.Equal(t, "/tmp/money-test/state.db", StoragePath(v))
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))

	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "a/b"), ExpandPath("~/a/b"))
}

func TestDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "money"), dir)
}

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	clearSheetsEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("oauth from viper with default token file", func(t *testing.T) {
		v := newViper()
		v.Set("sheets.client_id", "id")
		v.Set("sheets.client_secret", "secret")
		v.Set("sheets.spreadsheet_id", "sheet-1")

		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "sheet-1", cfg.SpreadsheetID)
		assert.Equal(t, filepath.Join(home, ".config/money/sheets-token.json"), cfg.TokenFile)
		assert.Equal(t, "MoneyTracker", cfg.SpreadsheetName)
	})

	t.Run("service account from environment", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "~/key.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Keuangan")

		cfg, err := LoadSheetsConfig(newViper())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "key.json"), cfg.ServiceAccountPath)
		assert.Empty(t, cfg.TokenFile)
		assert.Equal(t, "Keuangan", cfg.SpreadsheetName)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := LoadSheetsConfig(newViper())
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})
}
