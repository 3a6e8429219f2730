package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells income and expense apart.
type TransactionType string

const (
	// TypeIncome is money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense is money going out.
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType parses "income" or "expense".
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeIncome, TypeExpense:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type %q: must be income or expense", s)
	}
}

// Label is the human-readable name of the type.
func (t TransactionType) Label() string {
	switch t {
	case TypeIncome:
		return "Pemasukan"
	case TypeExpense:
		return "Pengeluaran"
	default:
		return string(t)
	}
}

// Transaction is a single income or expense entry owned by the backend.
type Transaction struct {
	Date         Date            `json:"date"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	CategoryName *string         `json:"category_name"`
	Description  *string         `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	ID           string          `json:"id"`
	UserID       string          `json:"user_id,omitempty"`
	Type         TransactionType `json:"type"`
	CategoryID   string          `json:"category_id"`
}

// DescriptionText returns the description, or "" when absent.
func (t Transaction) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// CategoryLabel returns the category name, or "" when absent.
func (t Transaction) CategoryLabel() string {
	if t.CategoryName == nil {
		return ""
	}
	return *t.CategoryName
}

// TransactionDraft is the full payload used to create or replace a transaction.
type TransactionDraft struct {
	Date        Date
	Description *string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  string
}

// MarshalJSON encodes the amount as a JSON number.
func (d TransactionDraft) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Description *string         `json:"description"`
		Type        TransactionType `json:"type"`
		CategoryID  string          `json:"category_id"`
		Amount      json.Number     `json:"amount"`
		Date        Date            `json:"date"`
	}{
		Type:        d.Type,
		CategoryID:  d.CategoryID,
		Amount:      json.Number(d.Amount.String()),
		Description: d.Description,
		Date:        d.Date,
	})
}

// TransactionPatch is a partial update. Nil fields are left unchanged by the backend.
type TransactionPatch struct {
	Type        *TransactionType
	CategoryID  *string
	Amount      *decimal.Decimal
	Description *string
	Date        *Date
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Type == nil && p.CategoryID == nil && p.Amount == nil && p.Description == nil && p.Date == nil
}

// MarshalJSON omits unset fields and encodes the amount as a JSON number.
func (p TransactionPatch) MarshalJSON() ([]byte, error) {
	var amount *json.Number
	if p.Amount != nil {
		n := json.Number(p.Amount.String())
		amount = &n
	}
	return json.Marshal(struct {
		Type        *TransactionType `json:"type,omitempty"`
		CategoryID  *string          `json:"category_id,omitempty"`
		Amount      *json.Number     `json:"amount,omitempty"`
		Description *string          `json:"description,omitempty"`
		Date        *Date            `json:"date,omitempty"`
	}{
		Type:        p.Type,
		CategoryID:  p.CategoryID,
		Amount:      amount,
		Description: p.Description,
		Date:        p.Date,
	})
}

// PatchFromDraft sets every field of the patch from d.
func PatchFromDraft(d TransactionDraft) TransactionPatch {
	t := d.Type
	categoryID := d.CategoryID
	amount := d.Amount
	date := d.Date
	description := d.Description
	if description == nil {
		empty := ""
		description = &empty
	}
	return TransactionPatch{
		Type:        &t,
		CategoryID:  &categoryID,
		Amount:      &amount,
		Description: description,
		Date:        &date,
	}
}
