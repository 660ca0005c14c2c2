package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectBudget/internal/api/budget"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTotalSpent(t *testing.T) {
	t.Run("sums expenses only", func(t *testing.T) {
		transactions := []TransactionSummary{
			{Amount: dec("25.50"), IsExpense: true},
			{Amount: dec("1000.00"), IsExpense: false},
			{Amount: dec("34.50"), IsExpense: true},
		}

		assert.True(t, dec("60").Equal(TotalSpent(transactions)))
	})

	t.Run("no transactions yields zero", func(t *testing.T) {
		assert.True(t, decimal.Zero.Equal(TotalSpent(nil)))
	})

	t.Run("income alone yields zero", func(t *testing.T) {
		transactions := []TransactionSummary{
			{Amount: dec("500.00"), IsExpense: false},
		}

		assert.True(t, decimal.Zero.Equal(TotalSpent(transactions)))
	})
}

func TestProgress(t *testing.T) {
	t.Run("partial spend", func(t *testing.T) {
		assert.InDelta(t, 60.0, Progress(dec("60"), dec("100")), 0.0001)
	})

	t.Run("exceeds one hundred percent", func(t *testing.T) {
		assert.InDelta(t, 150.0, Progress(dec("150"), dec("100")), 0.0001)
	})

	t.Run("fractional amounts", func(t *testing.T) {
		assert.InDelta(t, 33.4, Progress(dec("16.70"), dec("50")), 0.0001)
	})
}

func TestSummarize(t *testing.T) {
	b := Budget{
		ID:         7,
		UserID:     1,
		Name:       "Groceries",
		TotalLimit: dec("200"),
	}

	transactions := []TransactionSummary{
		{Amount: dec("80"), IsExpense: true},
		{Amount: dec("40"), IsExpense: true},
		{Amount: dec("300"), IsExpense: false},
	}

	summary := Summarize(b, transactions)

	assert.Equal(t, int64(7), summary.ID)
	assert.True(t, dec("120").Equal(summary.TotalSpent))
	assert.InDelta(t, 60.0, summary.Progress, 0.0001)
	assert.Equal(t, 3, summary.TransactionCount)
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{Name: "Groceries", TotalLimit: dec("100")}
	require.NoError(t, valid.Validate())

	t.Run("empty name", func(t *testing.T) {
		b := valid
		b.Name = ""
		assert.ErrorIs(t, b.Validate(), budget.ErrInvalidBudgetName)
	})

	t.Run("name too long", func(t *testing.T) {
		b := valid
		for len(b.Name) <= 100 {
			b.Name += "x"
		}
		assert.ErrorIs(t, b.Validate(), budget.ErrInvalidBudgetName)
	})

	t.Run("zero limit", func(t *testing.T) {
		b := valid
		b.TotalLimit = decimal.Zero
		assert.ErrorIs(t, b.Validate(), budget.ErrInvalidLimit)
	})

	t.Run("negative limit", func(t *testing.T) {
		b := valid
		b.TotalLimit = dec("-10")
		assert.ErrorIs(t, b.Validate(), budget.ErrInvalidLimit)
	})
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Amount: dec("25.50"), IsExpense: true, Category: "food"}
	require.NoError(t, valid.Validate())

	t.Run("unlinked is valid", func(t *testing.T) {
		tx := valid
		tx.BudgetID = 0
		assert.NoError(t, tx.Validate())
	})

	t.Run("zero amount", func(t *testing.T) {
		tx := valid
		tx.Amount = decimal.Zero
		assert.ErrorIs(t, tx.Validate(), budget.ErrInvalidAmount)
	})

	t.Run("negative amount", func(t *testing.T) {
		tx := valid
		tx.Amount = dec("-5")
		assert.ErrorIs(t, tx.Validate(), budget.ErrInvalidAmount)
	})

	t.Run("category too long", func(t *testing.T) {
		tx := valid
		for len(tx.Category) <= 50 {
			tx.Category += "x"
		}
		assert.ErrorIs(t, tx.Validate(), budget.ErrInvalidCategory)
	})

	t.Run("negative budget reference", func(t *testing.T) {
		tx := valid
		tx.BudgetID = -1
		assert.ErrorIs(t, tx.Validate(), budget.ErrInvalidBudgetReference)
	})
}
