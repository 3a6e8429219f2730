package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/sheets"
)

// DefaultSheetsTokenFile is where `money sheets auth` stores the OAuth2 token.
const DefaultSheetsTokenFile = "~/.config/money/sheets-token.json"

// LoadSheetsConfig reads sheets.* from v and falls back to the GOOGLE_SHEETS_*
// environment variables for anything unset.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	lookup := func(key, env string) string {
		if s := v.GetString(key); s != "" {
			return s
		}
		return os.Getenv(env)
	}

	cfg.ServiceAccountPath = ExpandPath(lookup("sheets.service_account_path", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"))
	cfg.ClientID = lookup("sheets.client_id", "GOOGLE_SHEETS_CLIENT_ID")
	cfg.ClientSecret = lookup("sheets.client_secret", "GOOGLE_SHEETS_CLIENT_SECRET")
	cfg.RefreshToken = lookup("sheets.refresh_token", "GOOGLE_SHEETS_REFRESH_TOKEN")
	cfg.SpreadsheetID = lookup("sheets.spreadsheet_id", "GOOGLE_SHEETS_SPREADSHEET_ID")
	if name := lookup("sheets.spreadsheet_name", "GOOGLE_SHEETS_SPREADSHEET_NAME"); name != "" {
		cfg.SpreadsheetName = name
	}

	// The token file only matters for OAuth2.
	if cfg.ServiceAccountPath == "" {
		tokenFile := v.GetString("sheets.token_file")
		if tokenFile == "" {
			tokenFile = DefaultSheetsTokenFile
		}
		cfg.TokenFile = ExpandPath(tokenFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
