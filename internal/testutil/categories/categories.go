// Package categories provides strongly-typed category fixtures for tests.
// The default set mirrors the categories the backend seeds for every new user.
//
// Example usage:
//
//	cats := categories.Defaults()
//	food := cats.MustFind(t, categories.Makanan)
package categories

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Veraticus/money-tracker/internal/model"
)

// CategoryName represents a strongly-typed category name.
type CategoryName string

// String returns the string representation of the category name.
func (c CategoryName) String() string {
	return string(c)
}

// Default category names.
const (
	Gaji          CategoryName = "Gaji"
	Bonus         CategoryName = "Bonus"
	Freelance     CategoryName = "Freelance"
	Lainnya       CategoryName = "Lainnya"
	Makanan       CategoryName = "Makanan"
	BelanjaOnline CategoryName = "Belanja Online"
	Paket         CategoryName = "Paket"
	Tagihan       CategoryName = "Tagihan"
	Transportasi  CategoryName = "Transportasi"
)

var defaultIncome = []CategoryName{Gaji, Bonus, Freelance, Lainnya}

var defaultExpense = []CategoryName{Makanan, BelanjaOnline, Paket, Tagihan, Transportasi, Lainnya}

// Categories is an ordered list of categories.
type Categories []model.Category

// Defaults returns the default categories with stable ids like "income-gaji".
func Defaults() Categories {
	cats := make(Categories, 0, len(defaultIncome)+len(defaultExpense))
	for _, name := range defaultIncome {
		cats = append(cats, newCategory(name, model.TypeIncome))
	}
	for _, name := range defaultExpense {
		cats = append(cats, newCategory(name, model.TypeExpense))
	}
	return cats
}

func newCategory(name CategoryName, t model.TransactionType) model.Category {
	slug := strings.ReplaceAll(strings.ToLower(name.String()), " ", "-")
	return model.Category{
		ID:   fmt.Sprintf("%s-%s", t, slug),
		Name: name.String(),
		Type: t,
	}
}

// Find returns the first category with the given name, or nil.
func (c Categories) Find(name CategoryName) *model.Category {
	for i := range c {
		if c[i].Name == name.String() {
			return &c[i]
		}
	}
	return nil
}

// FindTyped returns the category with the given name and type, or nil.
// "Lainnya" exists once per type.
func (c Categories) FindTyped(name CategoryName, t model.TransactionType) *model.Category {
	for i := range c {
		if c[i].Name == name.String() && c[i].Type == t {
			return &c[i]
		}
	}
	return nil
}

// MustFind returns the category with the given name or fails the test.
func (c Categories) MustFind(t *testing.T, name CategoryName) model.Category {
	t.Helper()
	cat := c.Find(name)
	if cat == nil {
		t.Fatalf("category %q not found", name)
	}
	return *cat
}

// Names returns the category names in order.
func (c Categories) Names() []string {
	names := make([]string, len(c))
	for i, cat := range c {
		names[i] = cat.Name
	}
	return names
}
