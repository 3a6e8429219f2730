package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/session"
	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

// app holds what every screen shares: the page controllers, the context
// requests run under and the presentation settings.
type app struct {
	ctx          context.Context
	theme        themes.Theme
	keymap       KeyMap
	now          func() time.Time
	login        *pages.LoginPage
	dashboard    *pages.DashboardPage
	transactions *pages.TransactionsPage
	categories   *pages.CategoriesPage
	admin        *pages.AdminPage
}

func newApp(ctx context.Context, cfg Config, notify pages.Notifier) *app {
	return &app{
		ctx:          ctx,
		theme:        cfg.Theme,
		keymap:       DefaultKeyMap(),
		now:          cfg.Now,
		login:        pages.NewLoginPage(cfg.Backend, cfg.Session, notify),
		dashboard:    pages.NewDashboardPage(cfg.Backend, notify),
		transactions: pages.NewTransactionsPage(cfg.Backend, notify),
		categories:   pages.NewCategoriesPage(cfg.Backend, notify),
		admin:        pages.NewAdminPage(cfg.Backend, notify),
	}
}

// bootstrap restores the session once.
func bootstrap(ctx context.Context, store *session.Store, v session.Verifier) tea.Cmd {
	return func() tea.Msg {
		return bootstrapDoneMsg{status: store.Bootstrap(ctx, v)}
	}
}

// goTo asks the model to open route.
func goTo(route guard.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

// submitLogin exchanges the credentials for a session.
func (a *app) submitLogin(username, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.login.Submit(a.ctx, username, password)
		return loginResultMsg{user: user, err: err}
	}
}

// loadDashboard fetches the stats and the latest transactions.
func (a *app) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		data, err := a.dashboard.Load(a.ctx)
		return dashboardLoadedMsg{data: data, err: err}
	}
}

// loadTransactions fetches transactions and categories.
func (a *app) loadTransactions() tea.Cmd {
	return func() tea.Msg {
		data, err := a.transactions.Load(a.ctx)
		return transactionsLoadedMsg{data: data, err: err}
	}
}

// saveTransaction creates or updates a transaction and fetches the list again.
func (a *app) saveTransaction(editingID string, form pages.Form) tea.Cmd {
	return func() tea.Msg {
		data, err := a.transactions.Save(a.ctx, editingID, form)
		return transactionSavedMsg{data: data, err: err}
	}
}

// deleteTransaction sends the DELETE. The dialog has already been confirmed.
func (a *app) deleteTransaction(id string) tea.Cmd {
	return func() tea.Msg {
		data, err := a.transactions.Delete(a.ctx, id, pages.Confirmed)
		return transactionDeletedMsg{data: data, err: err}
	}
}

// loadCategories fetches every category.
func (a *app) loadCategories() tea.Cmd {
	return func() tea.Msg {
		cats, err := a.categories.Load(a.ctx)
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

// createCategory adds a custom category and fetches the list again.
func (a *app) createCategory(name string, t model.TransactionType) tea.Cmd {
	return func() tea.Msg {
		cats, err := a.categories.Create(a.ctx, name, t)
		return categoryCreatedMsg{categories: cats, err: err}
	}
}

// loadUsers fetches every account.
func (a *app) loadUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := a.admin.Load(a.ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

// createUser registers an account and fetches the list again.
func (a *app) createUser(form pages.UserForm) tea.Cmd {
	return func() tea.Msg {
		users, err := a.admin.CreateUser(a.ctx, form)
		return userCreatedMsg{users: users, err: err}
	}
}

// tick drives toast expiry.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
