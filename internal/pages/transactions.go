package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/common"
	"github.com/Veraticus/money-tracker/internal/model"
)

// Form is the add/edit transaction form as typed by the user.
type Form struct {
	Type        model.TransactionType
	CategoryID  string
	Amount      string
	Description string
	Date        string
}

// NewForm is the empty form: an expense dated today.
func NewForm(today time.Time) Form {
	return Form{
		Type: model.TypeExpense,
		Date: model.NewDate(today).String(),
	}
}

// FormFromTransaction pre-fills the form for editing tx.
func FormFromTransaction(tx model.Transaction) Form {
	return Form{
		Type:        tx.Type,
		CategoryID:  tx.CategoryID,
		Amount:      tx.Amount.String(),
		Description: tx.DescriptionText(),
		Date:        tx.Date.String(),
	}
}

// WithType switches the type. The category is cleared because categories belong to one type.
func (f Form) WithType(t model.TransactionType) Form {
	if f.Type != t {
		f.CategoryID = ""
	}
	f.Type = t
	return f
}

// Draft validates the form and converts it to a request payload.
func (f Form) Draft() (model.TransactionDraft, error) {
	t, err := model.ParseTransactionType(string(f.Type))
	if err != nil {
		return model.TransactionDraft{}, invalid("Tipe harus income atau expense")
	}
	if strings.TrimSpace(f.CategoryID) == "" {
		return model.TransactionDraft{}, invalid("Pilih kategori")
	}
	amount, err := model.ParseAmount(strings.TrimSpace(f.Amount))
	if err != nil {
		return model.TransactionDraft{}, invalid("Jumlah harus berupa angka positif")
	}
	date, err := model.ParseDate(strings.TrimSpace(f.Date))
	if err != nil {
		return model.TransactionDraft{}, invalid("Tanggal harus berformat YYYY-MM-DD")
	}
	description := f.Description
	return model.TransactionDraft{
		Type:        t,
		CategoryID:  f.CategoryID,
		Amount:      amount,
		Description: &description,
		Date:        date,
	}, nil
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// Confirmed is a Confirmer for callers that already obtained confirmation.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// TransactionsData is what the transactions page fetched.
type TransactionsData struct {
	Transactions []model.Transaction
	Categories   []model.Category
}

// AvailableCategories returns the categories offered for a transaction of type t.
func (d TransactionsData) AvailableCategories(t model.TransactionType) []model.Category {
	return model.CategoriesOfType(d.Categories, t)
}

// TransactionsPage lists, creates, edits and deletes transactions.
type TransactionsPage struct {
	api    TransactionsAPI
	notify Notifier
	gate   Gate
}

// NewTransactionsPage creates the transactions page.
func NewTransactionsPage(a TransactionsAPI, n Notifier) *TransactionsPage {
	return &TransactionsPage{api: a, notify: orDiscard(n)}
}

// Load fetches transactions and categories concurrently. On failure both are dropped.
func (p *TransactionsPage) Load(ctx context.Context) (TransactionsData, error) {
	var data TransactionsData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Transactions, err = p.api.ListTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Categories, err = p.api.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return TransactionsData{}, fail(p.notify, MsgLoadFailed, err)
	}
	return data, nil
}

// Save creates a transaction when editingID is empty and replaces the one
// with that id otherwise. After success the lists are fetched again; the
// returned data always comes from the server. On failure the caller keeps
// its form as it was, unless the error is ErrRefetchFailed: then the
// transaction was saved and only the reload failed.
func (p *TransactionsPage) Save(ctx context.Context, editingID string, form Form) (TransactionsData, error) {
	draft, err := form.Draft()
	if err != nil {
		var formErr *FormError
		if errors.As(err, &formErr) {
			return TransactionsData{}, fail(p.notify, formErr.Message, err)
		}
		return TransactionsData{}, err
	}

	err = p.gate.Run(func() error {
		if editingID == "" {
			if _, err := p.api.CreateTransaction(ctx, draft); err != nil {
				return fail(p.notify, api.DetailOr(err, MsgTransactionSaveErr), err)
			}
			succeed(p.notify, MsgTransactionCreated)
			return nil
		}
		if _, err := p.api.UpdateTransaction(ctx, editingID, model.PatchFromDraft(draft)); err != nil {
			return fail(p.notify, api.DetailOr(err, MsgTransactionSaveErr), err)
		}
		succeed(p.notify, MsgTransactionUpdated)
		return nil
	})
	if err != nil {
		return TransactionsData{}, err
	}
	data, err := p.Load(ctx)
	return data, refetchErr(err)
}

// Delete removes a transaction after the confirmer agrees. Without
// confirmation nothing is sent and common.ErrNotConfirmed is returned.
func (p *TransactionsPage) Delete(ctx context.Context, id string, confirm Confirmer) (TransactionsData, error) {
	ok, err := confirm.Confirm(ctx, MsgDeleteConfirm)
	if err != nil {
		return TransactionsData{}, err
	}
	if !ok {
		return TransactionsData{}, common.ErrNotConfirmed
	}

	err = p.gate.Run(func() error {
		if err := p.api.DeleteTransaction(ctx, id); err != nil {
			return fail(p.notify, api.DetailOr(err, MsgTransactionDelErr), err)
		}
		succeed(p.notify, MsgTransactionDeleted)
		return nil
	})
	if err != nil {
		return TransactionsData{}, err
	}
	data, err := p.Load(ctx)
	return data, refetchErr(err)
}

// Busy reports whether a mutation is in flight.
func (p *TransactionsPage) Busy() bool {
	return p.gate.Busy()
}
