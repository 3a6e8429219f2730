package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

// dashboardScreen renders the server's aggregates and the latest transactions.
type dashboardScreen struct {
	app     *app
	data    pages.DashboardData
	loading bool
}

func newDashboardScreen(a *app) *dashboardScreen {
	return &dashboardScreen{app: a}
}

func (s *dashboardScreen) Init() tea.Cmd {
	s.loading = true
	return s.app.loadDashboard()
}

func (s *dashboardScreen) Capturing() bool { return false }

func (s *dashboardScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		s.loading = false
		s.data = msg.data
	case tea.KeyMsg:
		if key.Matches(msg, s.app.keymap.Refresh) {
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *dashboardScreen) View() string {
	t := s.app.theme
	if s.loading {
		return t.StatusPending.Render("Memuat dashboard...")
	}
	view := pages.BuildDashboardView(s.data.Stats, s.data.Recent)

	balance := t.Income
	if view.NegativeBalance {
		balance = t.Expense
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card(t, "Total Pemasukan", t.Income.Render(view.TotalIncome)),
		card(t, "Total Pengeluaran", t.Expense.Render(view.TotalExpense)),
		card(t, "Saldo", balance.Render(view.Balance)),
		card(t, "Jumlah Transaksi", t.Bold.Render(fmt.Sprintf("%d", view.TransactionCount))),
	)

	sections := []string{t.Title.Render("Dashboard"), cards, "", renderRecent(t, view.Recent)}
	if len(view.Breakdown) > 0 {
		sections = append(sections, "", renderBreakdown(t, view.Breakdown))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func card(t themes.Theme, label, value string) string {
	return t.RoundedBox.
		Padding(0, 2).
		Width(22).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(t.Muted).Render(label),
			value,
		))
}

func renderRecent(t themes.Theme, rows []pages.TransactionRow) string {
	var b strings.Builder
	b.WriteString(t.Bold.Render("Transaksi Terbaru"))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Muted).Render("Belum ada transaksi"))
		return b.String()
	}
	for _, r := range rows {
		amount := t.Expense
		if r.Type == model.TypeIncome {
			amount = t.Income
		}
		desc := r.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(&b, "%s %-16s %-24s %s  %s\n",
			themes.GetCategoryIcon(r.Category),
			r.Category,
			truncate(desc, 24),
			lipgloss.NewStyle().Foreground(t.Muted).Render(r.Date),
			amount.Render(r.Amount),
		)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderBreakdown(t themes.Theme, lines []pages.BreakdownLine) string {
	var b strings.Builder
	b.WriteString(t.Bold.Render("Breakdown per Kategori"))
	for _, l := range lines {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %-16s", themes.GetCategoryIcon(l.Name), l.Name)
		if l.Income != "" {
			b.WriteString(" " + t.Income.Render(l.Income))
		}
		if l.Expense != "" {
			b.WriteString(" " + t.Expense.Render(l.Expense))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
