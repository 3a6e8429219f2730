package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "Rp 0"},
		{"thousands", decimal.NewFromInt(1500000), "Rp 1.500.000"},
		{"rounds fraction", decimal.RequireFromString("2499.5"), "Rp 2.500"},
		{"negative", decimal.NewFromInt(-5000), "-Rp 5.000"},
		{"small", decimal.NewFromInt(750), "Rp 750"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIDR(tt.amount))
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("12500.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12500.5")))

	_, err = ParseAmount("-1")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseAmount("abc")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTransaction_DecodeOptionalFields(t *testing.T) {
	raw := `{"id":"t1","type":"expense","category_id":"c1","category_name":null,"amount":25000,"description":null,"date":"2024-03-05"}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	assert.Equal(t, TypeExpense, tx.Type)
	assert.Equal(t, "", tx.DescriptionText())
	assert.Equal(t, "", tx.CategoryLabel())
	assert.Equal(t, "2024-03-05", tx.Date.String())
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(25000)))
}

func TestTransactionDraft_MarshalJSON(t *testing.T) {
	date, err := ParseDate("2024-01-31")
	require.NoError(t, err)

	data, err := json.Marshal(TransactionDraft{
		Type:       TypeIncome,
		CategoryID: "gaji",
		Amount:     decimal.RequireFromString("1500000"),
		Date:       date,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"income","category_id":"gaji","amount":1500000,"description":null,"date":"2024-01-31"}`, string(data))
}

func TestTransactionPatch_MarshalJSON(t *testing.T) {
	amount := decimal.NewFromInt(42)
	data, err := json.Marshal(TransactionPatch{Amount: &amount})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":42}`, string(data))

	assert.True(t, TransactionPatch{}.IsEmpty())
	assert.False(t, TransactionPatch{Amount: &amount}.IsEmpty())
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"calendar date", `"2024-02-29"`, "2024-02-29", false},
		{"timestamp", `"2024-02-29T23:10:00Z"`, "2024-02-29", false},
		{"null", `null`, "", false},
		{"empty", `""`, "", false},
		{"timestamp without zone", `"2024-01-15T10:00:00"`, "2024-01-15", false},
		{"timestamp with fraction", `"2024-01-15T10:00:00.123456"`, "2024-01-15", false},
		{"garbage", `"yesterday"`, "", true},
		{"date with trailing text", `"2024-01-15 lalu"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestNewDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	d := NewDate(time.Date(2024, 6, 1, 23, 30, 0, 0, loc))
	assert.Equal(t, "2024-06-01", d.String())
}

func TestStats_SortedBreakdown(t *testing.T) {
	var nilStats *Stats
	assert.Empty(t, nilStats.SortedBreakdown())
	assert.Empty(t, (&Stats{}).SortedBreakdown())

	s := &Stats{CategoryBreakdown: map[string]CategoryAmounts{
		"Tagihan": {Expense: decimal.NewFromInt(300)},
		"Gaji":    {Income: decimal.NewFromInt(1000)},
		"Makanan": {Expense: decimal.NewFromInt(50)},
	}}
	rows := s.SortedBreakdown()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Gaji", "Makanan", "Tagihan"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestCategoriesOfType(t *testing.T) {
	cats := []Category{
		{ID: "1", Name: "Gaji", Type: TypeIncome},
		{ID: "2", Name: "Makanan", Type: TypeExpense},
		{ID: "3", Name: "Bonus", Type: TypeIncome},
	}
	got := CategoriesOfType(cats, TypeIncome)
	require.Len(t, got, 2)
	assert.Equal(t, "Gaji", got[0].Name)
	assert.Equal(t, "Bonus", got[1].Name)
	assert.Empty(t, CategoriesOfType(nil, TypeExpense))
}

func TestUser_IsSuperadmin(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.IsSuperadmin())
	assert.False(t, (&User{Role: RoleUser}).IsSuperadmin())
	assert.True(t, (&User{Role: RoleSuperadmin}).IsSuperadmin())
}

func TestFormatDateID(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "5 Maret 2024", FormatDateID(d))
	assert.Equal(t, "-", FormatDateID(Date{}))
}
