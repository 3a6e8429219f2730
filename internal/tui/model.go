package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/session"
)

// ErrNoBackend is returned by New without WithBackend.
var ErrNoBackend = errors.New("tui: backend is required")

// ErrNoSession is returned by New without WithSession.
var ErrNoSession = errors.New("tui: session store is required")

// Model holds the main TUI state. Nothing but the loading screen renders
// until the session has been restored.
type Model struct {
	ctx      context.Context
	app      *app
	screen   screen
	session  *session.Store
	verifier session.Verifier
	notices  noticeQueue
	config   Config
	help     help.Model
	route    guard.Route
	toasts   []toast
	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates the root model.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Backend == nil {
		return Model{}, ErrNoBackend
	}
	if cfg.Session == nil {
		return Model{}, ErrNoSession
	}
	if cfg.Verifier == nil {
		return Model{}, errors.New("tui: session verifier is required")
	}
	return newModel(ctx, cfg), nil
}

func newModel(ctx context.Context, cfg Config) Model {
	notices := newNoticeQueue()
	h := help.New()
	h.Styles.ShortKey = cfg.Theme.Bold
	return Model{
		ctx:      ctx,
		app:      newApp(ctx, cfg, notices),
		session:  cfg.Session,
		verifier: cfg.Verifier,
		notices:  notices,
		config:   cfg,
		help:     h,
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Init restores the session and starts the notice clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(bootstrap(m.ctx, m.session, m.verifier), tick())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.drainNotices()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case bootstrapDoneMsg:
		m.ready = true
		return m, m.navigate(m.config.Route)

	case navigateMsg:
		return m, m.navigate(msg.route)

	case tickMsg:
		m.pruneToasts(time.Time(msg))
		return m, tick()

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
	}

	if m.screen == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

// handleGlobalKeys handles keys that work on every screen. While a screen
// captures input only Ctrl+C is global.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	km := m.app.keymap
	if key.Matches(msg, km.ForceQuit) {
		m.quitting = true
		return tea.Quit, true
	}
	if !m.ready || (m.screen != nil && m.screen.Capturing()) {
		return nil, false
	}

	switch {
	case key.Matches(msg, km.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, km.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	case key.Matches(msg, km.Logout):
		if !m.session.IsAuthenticated() {
			return nil, false
		}
		m.session.Logout()
		return m.navigate(guard.Login), true
	}

	if k := km.navKey(msg.String()); k != "" {
		for _, item := range guard.Navigation(m.session.User()) {
			if item.Key == k {
				return m.navigate(item.Route), true
			}
		}
	}
	return nil, false
}

// navigate opens the page route resolves to for the current session.
// Every visit builds a fresh screen, so data is fetched again.
func (m *Model) navigate(route guard.Route) tea.Cmd {
	target := guard.Resolve(m.session.IsAuthenticated(), m.session.Role(), route)
	if target == guard.Download {
		// Downloads need a file system sink; the CLI serves them.
		target = guard.Dashboard
	}
	m.route = target
	m.screen = m.newScreen(target)
	cmd := m.screen.Init()
	if m.width > 0 && m.height > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		m.screen, _ = m.screen.Update(size)
	}
	return cmd
}

func (m *Model) newScreen(route guard.Route) screen {
	switch route {
	case guard.Login:
		return newLoginScreen(m.app)
	case guard.Transactions:
		return newTransactionsScreen(m.app)
	case guard.Categories:
		return newCategoriesScreen(m.app)
	case guard.Admin:
		return newAdminScreen(m.app)
	default:
		return newDashboardScreen(m.app)
	}
}

// drainNotices moves queued notices onto the screen.
func (m *Model) drainNotices() {
	now := m.config.Now()
	for {
		select {
		case n := <-m.notices:
			m.toasts = append(m.toasts, toast{notice: n, expires: now.Add(m.config.ToastDuration)})
		default:
			return
		}
	}
}

func (m *Model) pruneToasts(now time.Time) {
	kept := make([]toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// Route returns the page currently shown.
func (m Model) Route() guard.Route {
	return m.route
}
