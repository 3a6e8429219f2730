package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/tui/components"
	"github.com/Veraticus/money-tracker/internal/tui/themes"
)

type transactionsMode int

const (
	modeList transactionsMode = iota
	modeForm
	modeConfirm
)

// transactionsScreen lists transactions and hosts the add/edit form and
// the delete dialog.
type transactionsScreen struct {
	app           *app
	data          pages.TransactionsData
	list          components.TransactionListModel
	form          components.FormModel
	confirm       components.ConfirmModel
	editingID     string
	pendingDelete string
	mode          transactionsMode
	loading       bool
}

func newTransactionsScreen(a *app) *transactionsScreen {
	return &transactionsScreen{
		app:  a,
		list: components.NewTransactionList(nil, a.theme),
	}
}

func (s *transactionsScreen) Init() tea.Cmd {
	s.loading = true
	return s.app.loadTransactions()
}

func (s *transactionsScreen) Capturing() bool {
	return s.mode != modeList || s.list.Searching()
}

func (s *transactionsScreen) setData(data pages.TransactionsData) {
	s.data = data
	s.list.SetTransactions(data.Transactions)
}

func (s *transactionsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.list.Resize(msg.Width, msg.Height-8)
		return s, nil

	case transactionsLoadedMsg:
		s.loading = false
		s.setData(msg.data)
		return s, nil

	case transactionSavedMsg:
		s.form.SetBusy(false)
		if msg.err != nil && !errors.Is(msg.err, pages.ErrRefetchFailed) {
			// The form keeps what the user typed so they can retry.
			s.form.SetError(formError(msg.err))
			return s, nil
		}
		s.setData(msg.data)
		s.mode = modeList
		return s, nil

	case transactionDeletedMsg:
		// After a failed reload the list is emptied rather than showing the deleted row.
		if msg.err == nil || errors.Is(msg.err, pages.ErrRefetchFailed) {
			s.setData(msg.data)
		}
		return s, nil

	case components.TransactionSelectedMsg:
		s.openForm(msg.Transaction.ID, pages.FormFromTransaction(msg.Transaction))
		return s, nil

	case components.FormSubmittedMsg:
		s.form.SetError("")
		s.form.SetBusy(true)
		return s, s.app.saveTransaction(s.editingID, formFromValues(msg.Values))

	case components.FormCancelledMsg:
		s.mode = modeList
		return s, nil

	case components.ConfirmedMsg:
		s.mode = modeList
		id := s.pendingDelete
		s.pendingDelete = ""
		if !msg.Confirmed || id == "" {
			return s, nil
		}
		return s, s.app.deleteTransaction(id)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *transactionsScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.mode {
	case modeForm:
		before := s.form.Value("type")
		s.form, cmd = s.form.Update(msg)
		if after := s.form.Value("type"); after != before {
			s.form.SetChoices("category", categoryChoices(s.data.AvailableCategories(model.TransactionType(after))))
		}
		return s, cmd

	case modeConfirm:
		s.confirm, cmd = s.confirm.Update(msg)
		return s, cmd
	}

	if s.list.Searching() {
		s.list, cmd = s.list.Update(msg)
		return s, cmd
	}

	km := s.app.keymap
	switch {
	case key.Matches(msg, km.New):
		s.openForm("", pages.NewForm(s.app.now()))
		return s, nil
	case key.Matches(msg, km.Edit):
		if tx, ok := s.list.Selected(); ok {
			s.openForm(tx.ID, pages.FormFromTransaction(tx))
		}
		return s, nil
	case key.Matches(msg, km.Delete):
		if tx, ok := s.list.Selected(); ok {
			s.pendingDelete = tx.ID
			s.confirm = components.NewConfirm(pages.MsgDeleteConfirm, s.app.theme)
			s.mode = modeConfirm
		}
		return s, nil
	case key.Matches(msg, km.Refresh):
		return s, s.Init()
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *transactionsScreen) openForm(editingID string, f pages.Form) {
	title := "Tambah Transaksi"
	if editingID != "" {
		title = "Edit Transaksi"
	}
	fields := []components.Field{
		{Key: "type", Label: "Tipe", Kind: components.FieldChoice, Value: string(f.Type), Choices: typeChoices()},
		{
			Key: "category", Label: "Kategori", Kind: components.FieldChoice, Value: f.CategoryID,
			Choices: categoryChoices(s.data.AvailableCategories(f.Type)),
		},
		{Key: "amount", Label: "Jumlah", Placeholder: "50000", Value: f.Amount},
		{Key: "description", Label: "Deskripsi", Placeholder: "opsional", Value: f.Description},
		{Key: "date", Label: "Tanggal", Placeholder: "YYYY-MM-DD", Value: f.Date},
	}
	s.form = components.NewForm("transaction", title, fields, s.app.theme)
	s.editingID = editingID
	s.mode = modeForm
}

func typeChoices() []components.Choice {
	return []components.Choice{
		{Value: string(model.TypeExpense), Label: model.TypeExpense.Label()},
		{Value: string(model.TypeIncome), Label: model.TypeIncome.Label()},
	}
}

// categoryChoices starts with an empty choice so switching type clears the category.
func categoryChoices(cats []model.Category) []components.Choice {
	choices := make([]components.Choice, 0, len(cats)+1)
	choices = append(choices, components.Choice{Label: "Pilih kategori"})
	for _, c := range cats {
		choices = append(choices, components.Choice{
			Value: c.ID,
			Label: themes.GetCategoryIcon(c.Name) + " " + c.Name,
		})
	}
	return choices
}

func formFromValues(v map[string]string) pages.Form {
	return pages.Form{
		Type:        model.TransactionType(v["type"]),
		CategoryID:  v["category"],
		Amount:      v["amount"],
		Description: v["description"],
		Date:        v["date"],
	}
}

func (s *transactionsScreen) View() string {
	t := s.app.theme
	title := t.Title.Render("Transaksi")
	switch {
	case s.loading:
		return lipgloss.JoinVertical(lipgloss.Left, title, t.StatusPending.Render("Memuat transaksi..."))
	case s.mode == modeForm:
		return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View())
	case s.mode == modeConfirm:
		return lipgloss.JoinVertical(lipgloss.Left, title, s.list.View(), "", s.confirm.View())
	}
	hint := lipgloss.NewStyle().Foreground(t.Muted).
		Render("n tambah • e/Enter edit • d hapus • / cari • f filter • r muat ulang")
	return lipgloss.JoinVertical(lipgloss.Left, title, s.list.View(), hint)
}
