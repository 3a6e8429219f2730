package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/money-tracker/internal/filter"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

// ListMode represents the current mode of the list.
type ListMode int

// List modes.
const (
	ModeNormal ListMode = iota
	ModeSearch
)

// TransactionListModel shows the fetched transactions narrowed by a live
// search term and a type filter. Filtering never leaves the client.
type TransactionListModel struct {
	theme        themes.Theme
	criteria     filter.Criteria
	transactions []model.Transaction
	filtered     []model.Transaction
	searchInput  textinput.Model
	table        table.Model
	mode         ListMode
	width        int
	height       int
}

// NewTransactionList creates a new transaction list.
func NewTransactionList(transactions []model.Transaction, theme themes.Theme) TransactionListModel {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Cari kategori atau deskripsi..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 50
	searchInput.Cursor.SetMode(cursor.CursorStatic)

	m := TransactionListModel{
		theme:       theme,
		criteria:    filter.Criteria{Type: filter.All},
		table:       t,
		searchInput: searchInput,
		width:       80,
		height:      20,
	}
	m.SetTransactions(transactions)
	return m
}

func columns(width int) []table.Column {
	const fixed = 20 + 12 + 18 + 4*2
	desc := max(width-fixed-16, 12)
	return []table.Column{
		{Title: "Tanggal", Width: 20},
		{Title: "Kategori", Width: 16},
		{Title: "Deskripsi", Width: desc},
		{Title: "Tipe", Width: 12},
		{Title: "Jumlah", Width: 18},
	}
}

// SetTransactions replaces the list with a fresh fetch and reapplies the criteria.
func (m *TransactionListModel) SetTransactions(transactions []model.Transaction) {
	m.transactions = transactions
	m.applyFilters()
}

func (m *TransactionListModel) applyFilters() {
	m.filtered = filter.Apply(m.transactions, m.criteria)

	rows := make([]table.Row, 0, len(m.filtered))
	for _, r := range pages.TransactionRows(m.filtered) {
		rows = append(rows, table.Row{r.Date, r.Category, r.Description, r.TypeLabel, r.Amount})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Update handles messages.
func (m TransactionListModel) Update(msg tea.Msg) (TransactionListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == ModeSearch {
			return m.handleSearchMode(msg)
		}
		return m.handleNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m TransactionListModel) handleNormalMode(msg tea.KeyMsg) (TransactionListModel, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.mode = ModeSearch
		return m, m.searchInput.Focus()

	case "f":
		m.criteria.Type = m.criteria.Type.Next()
		m.applyFilters()
		return m, nil

	case "esc":
		if m.criteria.Search != "" {
			m.searchInput.SetValue("")
			m.criteria.Search = ""
			m.applyFilters()
		}
		return m, nil

	case "enter":
		tx, ok := m.Selected()
		if !ok {
			return m, nil
		}
		index := m.table.Cursor()
		return m, func() tea.Msg { return TransactionSelectedMsg{Transaction: tx, Index: index} }

	case "up", "k", "down", "j", "pgup", "pgdown", "home", "end", "g", "G":
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleSearchMode filters on every keystroke. Enter keeps the term, Esc clears it.
func (m TransactionListModel) handleSearchMode(msg tea.KeyMsg) (TransactionListModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.criteria.Search = ""
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != m.criteria.Search {
		m.criteria.Search = v
		m.applyFilters()
	}
	return m, cmd
}

// Resize adjusts the table to the available space.
func (m *TransactionListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-4, 3))
}

// Selected returns the highlighted transaction.
func (m TransactionListModel) Selected() (model.Transaction, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.filtered) {
		return model.Transaction{}, false
	}
	return m.filtered[c], true
}

// Criteria returns the active search and type filter.
func (m TransactionListModel) Criteria() filter.Criteria {
	return m.criteria
}

// Filtered returns the visible transactions.
func (m TransactionListModel) Filtered() []model.Transaction {
	return m.filtered
}

// Searching reports whether the search box has focus.
func (m TransactionListModel) Searching() bool {
	return m.mode == ModeSearch
}

// View renders the transaction list.
func (m TransactionListModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTable(),
	)
}

func (m TransactionListModel) renderHeader() string {
	search := m.searchInput.View()
	if m.mode != ModeSearch && m.criteria.Search == "" {
		search = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("/ cari")
	}
	filterLabel := fmt.Sprintf("Filter: %s", m.criteria.Type.Label())
	status := fmt.Sprintf("%d dari %d transaksi", len(m.filtered), len(m.transactions))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		search,
		"   ",
		m.theme.StatusInfo.Render(filterLabel),
		"   ",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(status),
	)
}

func (m TransactionListModel) renderTable() string {
	if len(m.filtered) == 0 {
		msg := "Belum ada transaksi"
		if len(m.transactions) > 0 {
			msg = "Tidak ada transaksi yang cocok"
		}
		return m.theme.Box.Render(lipgloss.NewStyle().Foreground(m.theme.Muted).Render(msg))
	}
	return m.table.View()
}
