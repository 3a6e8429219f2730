// Package filter narrows an already fetched transaction list by search term and type.
package filter

import (
	"fmt"
	"strings"

	"github.com/Veraticus/money-tracker/internal/model"
)

// Type restricts the list to one transaction type, or to none.
type Type string

const (
	// All keeps every transaction type.
	All Type = "all"
	// Income keeps income only.
	Income Type = "income"
	// Expense keeps expenses only.
	Expense Type = "expense"
)

// ParseType parses all, income or expense. An empty string means All.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case "", All:
		return All, nil
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("invalid filter type %q: must be all, income or expense", s)
	}
}

// Next cycles all -> income -> expense -> all.
func (t Type) Next() Type {
	switch t {
	case All:
		return Income
	case Income:
		return Expense
	default:
		return All
	}
}

// Label is shown next to the search box.
func (t Type) Label() string {
	switch t {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return "All"
	}
}

func (t Type) matches(tt model.TransactionType) bool {
	return t == "" || t == All || model.TransactionType(t) == tt
}

// Criteria are the two live inputs of the transactions page.
type Criteria struct {
	Search string
	Type   Type
}

// IsZero reports whether the criteria keep every transaction.
func (c Criteria) IsZero() bool {
	return c.Search == "" && (c.Type == "" || c.Type == All)
}

// Match reports whether tx passes the criteria.
func (c Criteria) Match(tx model.Transaction) bool {
	if !c.Type.matches(tx.Type) {
		return false
	}
	if c.Search == "" {
		return true
	}
	term := strings.ToLower(c.Search)
	return strings.Contains(strings.ToLower(tx.CategoryLabel()), term) ||
		strings.Contains(strings.ToLower(tx.DescriptionText()), term)
}

// Apply returns the transactions that pass c, keeping their order.
// The input slice is never modified.
func Apply(transactions []model.Transaction, c Criteria) []model.Transaction {
	out := make([]model.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if c.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}
