package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeHeader(tw io.Writer, columns ...string) {
	styled := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = HeaderStyle.Render(c)
		rules[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
}

// WriteTransactions renders rows as a table.
func WriteTransactions(w io.Writer, rows []pages.TransactionRow) error {
	tw := newTable(w)
	writeHeader(tw, "Tanggal", "Tipe", "Kategori", "Deskripsi", "Jumlah", "ID")
	for _, r := range rows {
		desc := r.Description
		if desc == "" {
			desc = SubtleStyle.Render("-")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Date, r.TypeLabel, r.Category, desc, FormatAmount(r.Amount), r.ID)
	}
	return tw.Flush()
}

// WriteCategories renders categories grouped by type.
func WriteCategories(w io.Writer, cats []model.Category) error {
	groups := []struct {
		title string
		t     model.TransactionType
	}{
		{"Kategori Pemasukan", model.TypeIncome},
		{"Kategori Pengeluaran", model.TypeExpense},
	}

	for i, g := range groups {
		typed := model.CategoriesOfType(cats, g.t)
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, TitleStyle.UnsetMargins().Render(fmt.Sprintf("%s (%d)", g.title, len(typed))))

		tw := newTable(w)
		for _, c := range typed {
			marker := ""
			if c.IsCustom {
				marker = InfoStyle.Render("Custom")
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Name, marker, SubtleStyle.Render(c.ID))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// WriteUsers renders the account list.
func WriteUsers(w io.Writer, users []model.User) error {
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render(fmt.Sprintf("Daftar User (%d)", len(users))))

	tw := newTable(w)
	writeHeader(tw, "Username", "Role", "Dibuat")
	for _, u := range users {
		created := "-"
		if u.CreatedAt != nil {
			created = model.FormatDateID(model.NewDate(*u.CreatedAt))
		}
		role := string(u.Role)
		if u.IsSuperadmin() {
			role = WarningStyle.Render(role)
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", UserIcon, u.Username, role, created)
	}
	return tw.Flush()
}

// WriteDashboard renders the dashboard summary, recent transactions and breakdown.
func WriteDashboard(w io.Writer, view pages.DashboardView) error {
	balance := IncomeStyle.Render(view.Balance)
	if view.NegativeBalance {
		balance = ExpenseStyle.Render(view.Balance)
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Total Pemasukan\t%s\n", IncomeStyle.Render(view.TotalIncome))
	fmt.Fprintf(tw, "Total Pengeluaran\t%s\n", ExpenseStyle.Render(view.TotalExpense))
	fmt.Fprintf(tw, "Saldo\t%s\n", balance)
	fmt.Fprintf(tw, "Total Transaksi\t%d\n", view.TransactionCount)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render("Transaksi Terbaru"))
	if len(view.Recent) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("Belum ada transaksi"))
	} else {
		tw = newTable(w)
		for _, r := range view.Recent {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Date, r.Category, r.Description, FormatAmount(r.Amount))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(view.Breakdown) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.UnsetMargins().Render(ChartIcon+" Breakdown per Kategori"))
	tw = newTable(w)
	for _, b := range view.Breakdown {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, FormatAmount(b.Income), FormatAmount(b.Expense))
	}
	return tw.Flush()
}
