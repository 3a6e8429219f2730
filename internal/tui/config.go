package tui

import (
	"time"

	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/session"
	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Backend  pages.Backend
	Session  *session.Store
	Verifier session.Verifier
	Now      func() time.Time
	// Route is the page requested at start; the guard may redirect it.
	Route         guard.Route
	Width         int
	Height        int
	ToastDuration time.Duration
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:         themes.Default,
		Now:           time.Now,
		Route:         guard.Dashboard,
		Width:         100,
		Height:        30,
		ToastDuration: 4 * time.Second,
	}
}

// WithBackend sets the API the pages talk to. When it can also verify
// tokens it is used as the session verifier.
func WithBackend(backend pages.Backend) Option {
	return func(c *Config) {
		c.Backend = backend
		if v, ok := backend.(session.Verifier); ok && c.Verifier == nil {
			c.Verifier = v
		}
	}
}

// WithSession sets the session store restored at start.
func WithSession(store *session.Store) Option {
	return func(c *Config) {
		c.Session = store
	}
}

// WithVerifier overrides how a persisted token is verified.
func WithVerifier(v session.Verifier) Option {
	return func(c *Config) {
		c.Verifier = v
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithRoute sets the page opened once the session is restored.
func WithRoute(route guard.Route) Option {
	return func(c *Config) {
		c.Route = route
	}
}

// WithClock sets the clock used for form defaults and notice expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithToastDuration sets how long a notice stays on screen.
func WithToastDuration(d time.Duration) Option {
	return func(c *Config) {
		c.ToastDuration = d
	}
}
