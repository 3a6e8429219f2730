package tui

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-tracker/internal/filter"
	"github.com/Veraticus/money-tracker/internal/model"
	"github.com/Veraticus/money-tracker/internal/pages"
	"github.com/Veraticus/money-tracker/internal/testutil"
	"github.com/Veraticus/money-tracker/internal/testutil/categories"
	tuitest "github.com/Veraticus/money-tracker/internal/tui/testing"
)

// openTransactions signs in as admin and opens the transactions page.
func openTransactions(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, testutil.AdminUsername)
	h.press(tuitest.KeyPress("2"))
	return h
}

// fillExpense fills the open form with the first expense category and amount.
func (h *harness) fillExpense(amount, desc string) {
	h.t.Helper()
	h.press(tuitest.KeyTab(), tuitest.KeyRight(), tuitest.KeyTab())
	h.typeText(amount)
	h.press(tuitest.KeyTab())
	h.typeText(desc)
}

func TestTransactionsScreen_CreateRefetches(t *testing.T) {
	h := openTransactions(t)
	listsBefore := h.backend.Count(http.MethodGet, "/api/transactions")

	h.press(tuitest.KeyPress("n"))
	s := h.transactions()
	require.Equal(t, modeForm, s.mode)
	assert.True(t, s.Capturing())
	assert.Equal(t, "2024-08-17", s.form.Value("date"), "date defaults to today")
	assert.Equal(t, string(model.TypeExpense), s.form.Value("type"))

	h.fillExpense("50000", "makan siang")
	makanan := h.backend.Categories().MustFind(t, categories.Makanan)
	assert.Equal(t, makanan.ID, s.form.Value("category"))
	h.press(tuitest.KeyEnter())

	s = h.transactions()
	assert.Equal(t, modeList, s.mode)
	require.Len(t, h.backend.Transactions(), 1)
	assert.Equal(t, listsBefore+1, h.backend.Count(http.MethodGet, "/api/transactions"), "list is fetched again")
	require.Len(t, s.list.Filtered(), 1)
	server := h.backend.Transactions()[0]
	assert.Equal(t, server.ID, s.list.Filtered()[0].ID, "row comes from the server")
	assert.Equal(t, pages.MsgTransactionCreated, h.lastToast().Message)
	assert.Contains(t, h.m.View(), "-Rp 50.000")
}

func TestTransactionsScreen_TypeSwitchClearsCategory(t *testing.T) {
	h := openTransactions(t)
	h.press(tuitest.KeyPress("n"), tuitest.KeyTab(), tuitest.KeyRight())
	s := h.transactions()
	require.NotEmpty(t, s.form.Value("category"))

	h.press(tuitest.KeyUp(), tuitest.KeyRight())
	s = h.transactions()
	assert.Equal(t, string(model.TypeIncome), s.form.Value("type"))
	assert.Empty(t, s.form.Value("category"))

	h.press(tuitest.KeyTab(), tuitest.KeyRight())
	gaji := h.backend.Categories().MustFind(t, categories.Gaji)
	assert.Equal(t, gaji.ID, h.transactions().form.Value("category"), "only income categories are offered")
}

func TestTransactionsScreen_SaveFailureKeepsForm(t *testing.T) {
	h := openTransactions(t)
	h.backend.Fail("POST /api/transactions", http.StatusBadRequest, "Category not found")

	h.press(tuitest.KeyPress("n"))
	h.fillExpense("50000", "")
	h.press(tuitest.KeyEnter())

	s := h.transactions()
	assert.Equal(t, modeForm, s.mode)
	assert.False(t, s.form.Busy())
	assert.Equal(t, "50000", s.form.Value("amount"))
	assert.Equal(t, pages.Notice{Level: pages.LevelError, Message: "Category not found"}, h.lastToast())
	assert.Empty(t, h.backend.Transactions())

	h.backend.Recover("POST /api/transactions")
	h.press(tuitest.KeyEnter())
	assert.Equal(t, modeList, h.transactions().mode, "retry from the kept form")
	assert.Len(t, h.backend.Transactions(), 1)
}

func TestTransactionsScreen_ReloadFailureAfterSaveClosesForm(t *testing.T) {
	h := openTransactions(t)
	h.backend.Fail("GET /api/transactions", http.StatusServiceUnavailable, "")

	h.press(tuitest.KeyPress("n"))
	h.fillExpense("50000", "")
	h.press(tuitest.KeyEnter())

	s := h.transactions()
	assert.Equal(t, modeList, s.mode, "a saved transaction is not offered for resubmission")
	assert.Len(t, h.backend.Transactions(), 1)
	assert.Equal(t, pages.Notice{Level: pages.LevelError, Message: pages.MsgLoadFailed}, h.lastToast())

	h.press(tuitest.KeyEnter())
	assert.Len(t, h.backend.Transactions(), 1, "no duplicate")
}

func TestTransactionsScreen_ReloadFailureAfterDelete(t *testing.T) {
	h := newHarness(t, testutil.AdminUsername)
	h.seed(categories.Makanan, model.TypeExpense, 100000, "makan")
	h.press(tuitest.KeyPress("2"))
	require.Len(t, h.transactions().list.Filtered(), 1)

	h.backend.Fail("GET /api/transactions", http.StatusServiceUnavailable, "")
	h.press(tuitest.KeyPress("d"), tuitest.KeyPress("y"))

	assert.Empty(t, h.backend.Transactions())
	assert.Empty(t, h.transactions().list.Filtered(), "the deleted row is not shown")
	assert.Equal(t, pages.MsgLoadFailed, h.lastToast().Message)
}

func TestTransactionsScreen_Validation(t *testing.T) {
	h := openTransactions(t)
	h.press(tuitest.KeyPress("n"), tuitest.KeyEnter())

	s := h.transactions()
	assert.Equal(t, modeForm, s.mode)
	assert.Contains(t, s.form.View(), "Pilih kategori")
	assert.Zero(t, h.backend.Count(http.MethodPost, "/api/transactions"))

	h.press(tuitest.KeyEsc())
	assert.Equal(t, modeList, h.transactions().mode)
}

func TestTransactionsScreen_Edit(t *testing.T) {
	h := newHarness(t, testutil.AdminUsername)
	tx := h.seed(categories.Makanan, model.TypeExpense, 100000, "makan")
	h.press(tuitest.KeyPress("2"), tuitest.KeyPress("e"))

	s := h.transactions()
	require.Equal(t, modeForm, s.mode)
	assert.Equal(t, tx.ID, s.editingID)
	assert.Equal(t, "100000", s.form.Value("amount"))
	assert.Equal(t, tx.CategoryID, s.form.Value("category"))

	h.press(tuitest.KeyTab(), tuitest.KeyTab())
	h.typeText("0")
	h.press(tuitest.KeyEnter())

	assert.Equal(t, "1000000", h.backend.Transactions()[0].Amount.String())
	assert.Equal(t, pages.MsgTransactionUpdated, h.lastToast().Message)
	assert.Equal(t, 1, h.backend.Count(http.MethodPut, "/api/transactions/"+tx.ID))
}

func TestTransactionsScreen_Delete(t *testing.T) {
	h := newHarness(t, testutil.AdminUsername)
	tx := h.seed(categories.Makanan, model.TypeExpense, 100000, "makan")
	h.press(tuitest.KeyPress("2"))
	path := "/api/transactions/" + tx.ID

	h.press(tuitest.KeyPress("d"))
	s := h.transactions()
	require.Equal(t, modeConfirm, s.mode)
	assert.Contains(t, h.m.View(), pages.MsgDeleteConfirm)

	// q answers the dialog instead of quitting.
	h.press(tuitest.KeyPress("q"))
	assert.False(t, h.m.quitting)
	assert.Equal(t, modeList, h.transactions().mode)
	assert.Zero(t, h.backend.Count(http.MethodDelete, path), "nothing sent without confirmation")

	h.press(tuitest.KeyPress("d"), tuitest.KeyPress("y"))
	assert.Equal(t, 1, h.backend.Count(http.MethodDelete, path))
	assert.Empty(t, h.transactions().list.Filtered())
	assert.Equal(t, pages.MsgTransactionDeleted, h.lastToast().Message)
}

func TestTransactionsScreen_DeleteFailure(t *testing.T) {
	h := newHarness(t, testutil.AdminUsername)
	tx := h.seed(categories.Makanan, model.TypeExpense, 100000, "makan")
	h.press(tuitest.KeyPress("2"))
	h.backend.Fail("DELETE /api/transactions/"+tx.ID, http.StatusNotFound, "Transaction not found")

	h.press(tuitest.KeyPress("d"), tuitest.KeyEnter())
	assert.Equal(t, "Transaction not found", h.lastToast().Message)
	assert.Len(t, h.transactions().list.Filtered(), 1, "list is kept")
}

func TestTransactionsScreen_SearchAndFilter(t *testing.T) {
	h := newHarness(t, testutil.AdminUsername)
	h.seed(categories.Gaji, model.TypeIncome, 5000000, "")
	h.seed(categories.Makanan, model.TypeExpense, 50000, "lunch")
	h.press(tuitest.KeyPress("2"))
	require.Len(t, h.transactions().list.Filtered(), 2)

	h.press(tuitest.KeyPress("/"))
	assert.True(t, h.transactions().Capturing())
	h.typeText("lun")
	assert.Len(t, h.transactions().list.Filtered(), 1, "filters while typing")
	assert.Equal(t, "lunch", h.transactions().list.Filtered()[0].DescriptionText())
	requests := len(h.backend.Requests())

	h.typeText("zzz")
	assert.Empty(t, h.transactions().list.Filtered())
	assert.Contains(t, h.m.View(), "Tidak ada transaksi yang cocok")
	assert.Len(t, h.backend.Requests(), requests, "search never hits the backend")

	h.press(tuitest.KeyEsc())
	assert.Len(t, h.transactions().list.Filtered(), 2)

	h.press(tuitest.KeyPress("f"))
	assert.Equal(t, filter.Income, h.transactions().list.Criteria().Type)
	require.Len(t, h.transactions().list.Filtered(), 1)
	assert.Equal(t, model.TypeIncome, h.transactions().list.Filtered()[0].Type)

	h.press(tuitest.KeyPress("f"))
	assert.Equal(t, filter.Expense, h.transactions().list.Criteria().Type)
	h.press(tuitest.KeyPress("f"))
	assert.Equal(t, filter.All, h.transactions().list.Criteria().Type)
}

func TestTransactionsScreen_LoadFailure(t *testing.T) {
	h := newHarness(t, testutil.AdminUsername)
	h.backend.Fail("GET /api/categories", http.StatusBadGateway, "")
	h.press(tuitest.KeyPress("2"))

	assert.Equal(t, pages.MsgLoadFailed, h.lastToast().Message)
	assert.Empty(t, h.transactions().list.Filtered())
	assert.Contains(t, h.m.View(), "Belum ada transaksi")
}

func TestCategoriesScreen_Add(t *testing.T) {
	h := newHarness(t, testutil.AdminUsername)
	h.press(tuitest.KeyPress("3"))
	assert.Contains(t, h.m.View(), "Kategori Pemasukan (4)")

	h.press(tuitest.KeyPress("n"))
	h.typeText("Hobi")
	h.press(tuitest.KeyEnter())

	s, ok := h.m.screen.(*categoriesScreen)
	require.True(t, ok)
	assert.False(t, s.adding)
	assert.Equal(t, pages.MsgCategoryCreated, h.lastToast().Message)
	view := h.m.View()
	assert.Contains(t, view, "Hobi")
	assert.Contains(t, view, "Custom")

	h.press(tuitest.KeyPress("n"))
	h.typeText("Makanan")
	h.press(tuitest.KeyEnter())
	assert.Equal(t, "Category already exists", h.lastToast().Message)
	assert.True(t, h.m.screen.(*categoriesScreen).adding, "form stays open")
}

func TestAdminScreen_CreateUser(t *testing.T) {
	h := newHarness(t, testutil.AdminUsername)
	h.press(tuitest.KeyPress("4"), tuitest.KeyPress("n"))
	h.typeText("budi")
	h.press(tuitest.KeyTab())
	h.typeText("rahasia")
	h.press(tuitest.KeyEnter())

	assert.Equal(t, pages.MsgUserCreated, h.lastToast().Message)
	assert.Contains(t, h.m.View(), "budi")

	h.press(tuitest.KeyPress("n"))
	h.typeText("budi")
	h.press(tuitest.KeyTab())
	h.typeText("lagi")
	h.press(tuitest.KeyEnter())
	assert.Equal(t, "Username already exists", h.lastToast().Message)
}
