package pages

import (
	"context"
	"strings"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/model"
)

// CategoriesPage lists categories and adds custom ones.
type CategoriesPage struct {
	api    CategoriesAPI
	notify Notifier
	gate   Gate
}

// NewCategoriesPage creates the categories page.
func NewCategoriesPage(a CategoriesAPI, n Notifier) *CategoriesPage {
	return &CategoriesPage{api: a, notify: orDiscard(n)}
}

// Load fetches every category.
func (p *CategoriesPage) Load(ctx context.Context) ([]model.Category, error) {
	cats, err := p.api.ListCategories(ctx)
	if err != nil {
		return nil, fail(p.notify, MsgCategoriesLoadErr, err)
	}
	return cats, nil
}

// Create adds a custom category and returns the re-fetched list.
func (p *CategoriesPage) Create(ctx context.Context, name string, t model.TransactionType) ([]model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fail(p.notify, "Nama kategori wajib diisi", invalid("Nama kategori wajib diisi"))
	}
	if _, err := model.ParseTransactionType(string(t)); err != nil {
		return nil, fail(p.notify, "Tipe harus income atau expense", invalid(err.Error()))
	}

	err := p.gate.Run(func() error {
		if _, err := p.api.CreateCategory(ctx, model.CategoryDraft{Name: name, Type: t}); err != nil {
			return fail(p.notify, api.DetailOr(err, MsgCategoryCreateErr), err)
		}
		succeed(p.notify, MsgCategoryCreated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	cats, err := p.Load(ctx)
	return cats, refetchErr(err)
}

// Busy reports whether a creation is in flight.
func (p *CategoriesPage) Busy() bool {
	return p.gate.Busy()
}
