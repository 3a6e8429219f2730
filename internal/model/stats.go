package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAmounts holds the summed amounts for one category.
type CategoryAmounts struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Stats are the aggregates computed by the backend for the current user.
type Stats struct {
	CategoryBreakdown map[string]CategoryAmounts `json:"category_breakdown"`
	TotalIncome       decimal.Decimal            `json:"total_income"`
	TotalExpense      decimal.Decimal            `json:"total_expense"`
	Balance           decimal.Decimal            `json:"balance"`
	TransactionCount  int                        `json:"transaction_count"`
}

// BreakdownRow is one entry of the category breakdown.
type BreakdownRow struct {
	Name string
	CategoryAmounts
}

// SortedBreakdown returns the breakdown ordered by category name.
// A nil receiver or an absent breakdown yields an empty slice.
func (s *Stats) SortedBreakdown() []BreakdownRow {
	if s == nil || len(s.CategoryBreakdown) == 0 {
		return []BreakdownRow{}
	}
	rows := make([]BreakdownRow, 0, len(s.CategoryBreakdown))
	for name, amounts := range s.CategoryBreakdown {
		rows = append(rows, BreakdownRow{Name: name, CategoryAmounts: amounts})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})
	return rows
}
