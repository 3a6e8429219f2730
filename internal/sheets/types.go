package sheets

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-tracker/internal/model"
)

// Section titles, also used to find rows when formatting.
const (
	titleReport       = "Laporan Keuangan"
	titleSummary      = "Ringkasan"
	titleBreakdown    = "Breakdown per Kategori"
	titleTransactions = "Transaksi"
)

// Report is everything written to the spreadsheet.
type Report struct {
	GeneratedAt  time.Time
	Stats        *model.Stats
	Transactions []model.Transaction
}

// layout records where each block starts in Values, zero-based.
type layout struct {
	summaryRow      int
	breakdownHeader int
	txHeader        int
	totalRows       int
}

// Values renders the report as rows: a title, the summary, the category
// breakdown and the transactions newest first. Expenses carry negative amounts.
func (r Report) Values() [][]any {
	values, _ := r.build()
	return values
}

func (r Report) build() ([][]any, layout) {
	stats := r.Stats
	if stats == nil {
		stats = &model.Stats{}
	}
	breakdown := stats.SortedBreakdown()

	values := make([][]any, 0, 14+len(breakdown)+len(r.Transactions))
	values = append(values,
		[]any{titleReport, model.FormatDateID(model.NewDate(r.GeneratedAt))},
		[]any{},
		[]any{titleSummary},
		[]any{"Total Pemasukan", number(stats.TotalIncome)},
		[]any{"Total Pengeluaran", number(stats.TotalExpense)},
		[]any{"Saldo", number(stats.Balance)},
		[]any{"Total Transaksi", stats.TransactionCount},
		[]any{},
		[]any{titleBreakdown},
	)
	var l layout
	l.summaryRow = 3
	l.breakdownHeader = len(values)
	values = append(values, []any{"Kategori", "Pemasukan", "Pengeluaran"})
	for _, row := range breakdown {
		values = append(values, []any{row.Name, number(row.Income), number(row.Expense)})
	}

	values = append(values, []any{}, []any{titleTransactions})
	l.txHeader = len(values)
	values = append(values, []any{"Tanggal", "Tipe", "Kategori", "Deskripsi", "Jumlah"})

	txs := make([]model.Transaction, len(r.Transactions))
	copy(txs, r.Transactions)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date.Time) })
	for _, tx := range txs {
		amount := tx.Amount
		if tx.Type == model.TypeExpense {
			amount = amount.Neg()
		}
		values = append(values, []any{
			tx.Date.String(),
			tx.Type.Label(),
			tx.CategoryLabel(),
			tx.DescriptionText(),
			number(amount),
		})
	}

	l.totalRows = len(values)
	return values, l
}

// number is the decimal as text; USER_ENTERED input turns it back into a number.
func number(d decimal.Decimal) string {
	return d.String()
}
