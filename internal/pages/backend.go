package pages

import (
	"context"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/model"
)

// AuthAPI signs users in.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
}

// SessionWriter records a successful sign-in.
type SessionWriter interface {
	Login(user model.User, token string) error
}

// DashboardAPI serves the dashboard.
type DashboardAPI interface {
	Stats(ctx context.Context) (*model.Stats, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
}

// TransactionsAPI serves the transactions page.
type TransactionsAPI interface {
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateTransaction(ctx context.Context, draft model.TransactionDraft) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// CategoriesAPI serves the categories page.
type CategoriesAPI interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, draft model.CategoryDraft) (*model.Category, error)
}

// AdminAPI serves the admin page.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	Register(ctx context.Context, req api.RegisterRequest) (*model.User, error)
}

// DownloadAPI serves the download page.
type DownloadAPI interface {
	DownloadSourceCode(ctx context.Context) (*api.Download, error)
}

// Backend is everything the pages need; *api.Client implements it.
type Backend interface {
	AuthAPI
	DashboardAPI
	TransactionsAPI
	CategoriesAPI
	AdminAPI
	DownloadAPI
}

var _ Backend = (*api.Client)(nil)
