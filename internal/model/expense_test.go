package model

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNewExpense() NewExpense {
	return NewExpense{
		Amount:      decimal.RequireFromString("45.99"),
		Description: "Grocery shopping",
		CategoryID:  "cat1",
		Date:        NewDate(2023, time.May, 1),
	}
}

func TestNewExpenseValidate(t *testing.T) {
	require.NoError(t, validNewExpense().Validate())

	tests := []struct {
		mutate  func(*NewExpense)
		wantErr error
		name    string
	}{
		{name: "negative amount", mutate: func(n *NewExpense) { n.Amount = decimal.NewFromInt(-1) }, wantErr: ErrInvalidAmount},
		{name: "blank description", mutate: func(n *NewExpense) { n.Description = "   " }, wantErr: ErrEmptyDescription},
		{name: "long description", mutate: func(n *NewExpense) { n.Description = strings.Repeat("x", MaxDescriptionLength+1) }, wantErr: ErrDescriptionTooLong},
		{name: "missing category", mutate: func(n *NewExpense) { n.CategoryID = "" }, wantErr: ErrMissingCategory},
		{name: "zero date", mutate: func(n *NewExpense) { n.Date = Date{} }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := validNewExpense()
			tt.mutate(&n)
			assert.ErrorIs(t, n.Validate(), tt.wantErr)
		})
	}
}

func TestNewExpenseZeroAmountIsAllowed(t *testing.T) {
	n := validNewExpense()
	n.Amount = decimal.Zero
	assert.NoError(t, n.Validate())
}

func TestExpensePatch(t *testing.T) {
	original := validNewExpense().WithID("exp1")

	t.Run("empty patch leaves the record unchanged", func(t *testing.T) {
		patch := ExpensePatch{}
		assert.True(t, patch.IsEmpty())
		require.NoError(t, patch.Validate())
		assert.Equal(t, original, patch.Apply(original))
	})

	t.Run("supplied fields replace existing ones", func(t *testing.T) {
		amount := decimal.RequireFromString("12.50")
		desc := "  Farmers market "
		recurring := true
		patch := ExpensePatch{Amount: &amount, Description: &desc, Recurring: &recurring}
		require.NoError(t, patch.Validate())

		updated := patch.Apply(original)
		assert.Equal(t, "exp1", updated.ID)
		assert.True(t, amount.Equal(updated.Amount))
		assert.Equal(t, "Farmers market", updated.Description)
		assert.True(t, updated.Recurring)
		assert.Equal(t, original.CategoryID, updated.CategoryID)
		assert.Equal(t, original.Date, updated.Date)
	})

	t.Run("invalid fields are rejected", func(t *testing.T) {
		empty := ""
		assert.ErrorIs(t, ExpensePatch{Description: &empty}.Validate(), ErrEmptyDescription)
		assert.ErrorIs(t, ExpensePatch{CategoryID: &empty}.Validate(), ErrMissingCategory)

		negative := decimal.NewFromInt(-5)
		assert.ErrorIs(t, ExpensePatch{Amount: &negative}.Validate(), ErrInvalidAmount)

		zero := Date{}
		assert.ErrorIs(t, ExpensePatch{Date: &zero}.Validate(), ErrInvalidDate)
	})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "1", want: "1", ok: true},
		{in: "45.99", want: "45.99", ok: true},
		{in: "45,99", want: "45.99", ok: true},
		{in: " 2.50 ", want: "2.5", ok: true},
		{in: "1.005", want: "1.01", ok: true},
		{in: "0", want: "0", ok: true},
		{in: "-1", ok: false},
		{in: "+1", ok: false},
		{in: "abc", ok: false},
		{in: "", ok: false},
		{in: "1e3", ok: false},
		{in: "1e999999999", ok: false},
		{in: "1.", ok: false},
		{in: ".5", ok: false},
		{in: "1,000.50", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
