package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/common"
)

// Defaults for the viper keys read by this package.
const (
	DefaultBackendURL  = "http://localhost:8001"
	DefaultStoragePath = "$HOME/.local/share/money/state.db"
	DefaultTheme       = "default"
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.backend_url", DefaultBackendURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("storage.path", DefaultStoragePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("ui.theme", DefaultTheme)
}

// API holds the backend connection settings.
type API struct {
	BackendURL string
	Timeout    time.Duration
}

// BaseURL is the backend URL with any trailing slash removed and "/api" appended.
func (a API) BaseURL() string {
	return strings.TrimRight(a.BackendURL, "/") + "/api"
}

// LoadAPI reads api.* from v.
func LoadAPI(v *viper.Viper) (API, error) {
	cfg := API{
		BackendURL: strings.TrimSpace(v.GetString("api.backend_url")),
		Timeout:    v.GetDuration("api.timeout"),
	}
	if cfg.BackendURL == "" {
		return API{}, fmt.Errorf("%w: api.backend_url", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(cfg.BackendURL, "http://") && !strings.HasPrefix(cfg.BackendURL, "https://") {
		return API{}, fmt.Errorf("%w: api.backend_url must start with http:// or https://", common.ErrInvalidConfig)
	}
	if cfg.Timeout < 0 {
		return API{}, fmt.Errorf("%w: api.timeout must not be negative", common.ErrInvalidConfig)
	}
	return cfg, nil
}

// StoragePath returns the expanded local storage database path.
func StoragePath(v *viper.Viper) string {
	p := v.GetString("storage.path")
	if p == "" {
		p = DefaultStoragePath
	}
	return ExpandPath(p)
}
