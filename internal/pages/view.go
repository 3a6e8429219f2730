package pages

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-tracker/internal/model"
)

// TransactionRow is a transaction prepared for display.
type TransactionRow struct {
	ID          string
	Type        model.TransactionType
	TypeLabel   string
	Category    string
	Description string
	Date        string
	Amount      string
}

// BreakdownLine is one category of the breakdown prepared for display.
// Income and Expense are empty when the amount is zero.
type BreakdownLine struct {
	Name    string
	Income  string
	Expense string
}

// DashboardView holds display values for the dashboard. Every field has a
// displayable value even when nothing was loaded.
type DashboardView struct {
	TotalIncome      string
	TotalExpense     string
	Balance          string
	Recent           []TransactionRow
	Breakdown        []BreakdownLine
	TransactionCount int
	NegativeBalance  bool
}

// TypeLabel is the Indonesian name of a transaction type.
func TypeLabel(t model.TransactionType) string {
	if t == model.TypeIncome {
		return t.Label()
	}
	return model.TypeExpense.Label()
}

// SignedAmount prefixes the formatted amount with + for income and - for expenses.
func SignedAmount(tx model.Transaction) string {
	if tx.Type == model.TypeIncome {
		return "+" + model.FormatIDR(tx.Amount)
	}
	return "-" + model.FormatIDR(tx.Amount)
}

// NewTransactionRow formats tx for display.
func NewTransactionRow(tx model.Transaction) TransactionRow {
	return TransactionRow{
		ID:          tx.ID,
		Type:        tx.Type,
		TypeLabel:   TypeLabel(tx.Type),
		Category:    tx.CategoryLabel(),
		Description: tx.DescriptionText(),
		Date:        model.FormatDateID(tx.Date),
		Amount:      SignedAmount(tx),
	}
}

// TransactionRows formats a list for display.
func TransactionRows(txs []model.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, NewTransactionRow(tx))
	}
	return rows
}

// BuildDashboardView renders the aggregates without recomputing them.
// A nil stats, an empty list and an empty breakdown all render as zero/empty values.
func BuildDashboardView(stats *model.Stats, recent []model.Transaction) DashboardView {
	income, expense, balance := decimal.Zero, decimal.Zero, decimal.Zero
	count := 0
	if stats != nil {
		income, expense, balance = stats.TotalIncome, stats.TotalExpense, stats.Balance
		count = stats.TransactionCount
	}

	view := DashboardView{
		TotalIncome:      model.FormatIDR(income),
		TotalExpense:     model.FormatIDR(expense),
		Balance:          model.FormatIDR(balance),
		TransactionCount: count,
		NegativeBalance:  balance.IsNegative(),
		Recent:           TransactionRows(recent),
		Breakdown:        []BreakdownLine{},
	}

	for _, row := range stats.SortedBreakdown() {
		line := BreakdownLine{Name: row.Name}
		if row.Income.IsPositive() {
			line.Income = "+" + model.FormatIDR(row.Income)
		}
		if row.Expense.IsPositive() {
			line.Expense = "-" + model.FormatIDR(row.Expense)
		}
		view.Breakdown = append(view.Breakdown, line)
	}
	return view
}
