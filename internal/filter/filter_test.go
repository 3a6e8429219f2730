package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-tracker/internal/model"
)

func strPtr(s string) *string { return &s }

func sample() []model.Transaction {
	return []model.Transaction{
		{ID: "1", Type: model.TypeIncome, CategoryName: strPtr("Salary")},
		{ID: "2", Type: model.TypeExpense, CategoryName: strPtr("Food"), Description: strPtr("lunch")},
	}
}

func ids(txs []model.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"expense only", Criteria{Type: Expense}, []string{"2"}},
		{"income only", Criteria{Type: Income}, []string{"1"}},
		{"description match", Criteria{Search: "lun", Type: All}, []string{"2"}},
		{"category match case insensitive", Criteria{Search: "SAL"}, []string{"1"}},
		{"no match", Criteria{Search: "zzz"}, []string{}},
		{"zero criteria keeps everything", Criteria{}, []string{"1", "2"}},
		{"type and search combined", Criteria{Search: "food", Type: Income}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.criteria)))
		})
	}
}

func TestApply_MissingFields(t *testing.T) {
	txs := []model.Transaction{{ID: "bare", Type: model.TypeExpense}}

	assert.Empty(t, Apply(txs, Criteria{Search: "x"}))
	assert.Equal(t, []string{"bare"}, ids(Apply(txs, Criteria{})))
}

func TestApply_Idempotent(t *testing.T) {
	input := sample()
	c := Criteria{Search: "o", Type: All}

	first := Apply(input, c)
	second := Apply(input, c)
	assert.Equal(t, first, second)
	assert.Equal(t, first, Apply(first, c))
	assert.Equal(t, sample(), input, "input must not be modified")
}

func TestParseType(t *testing.T) {
	for input, want := range map[string]Type{"": All, "all": All, "Income": Income, "expense": Expense} {
		got, err := ParseType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseType("transfer")
	assert.Error(t, err)
}

func TestType_Next(t *testing.T) {
	assert.Equal(t, Income, All.Next())
	assert.Equal(t, Expense, Income.Next())
	assert.Equal(t, All, Expense.Next())
	assert.Equal(t, All, Type("").Next())
}
