package entity

import (
	"ProjectBudget/internal/api/budget"
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	TotalLimit  decimal.Decimal `db:"total_limit"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (b *Budget) Validate() error {
	if len(b.Name) < 1 || len(b.Name) > 100 {
		return budget.ErrInvalidBudgetName
	}

	if !b.TotalLimit.IsPositive() {
		return budget.ErrInvalidLimit
	}

	return nil
}

// Transaction is a single dated money movement. BudgetID is zero when the
// transaction is not linked to any budget.
type Transaction struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	BudgetID        int64           `db:"budget_id"`
	Amount          decimal.Decimal `db:"amount"`
	IsExpense       bool            `db:"is_expense"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return budget.ErrInvalidAmount
	}

	if len(t.Category) > 50 {
		return budget.ErrInvalidCategory
	}

	if t.BudgetID < 0 {
		return budget.ErrInvalidBudgetReference
	}

	return nil
}

// TransactionWithBudget carries the linked budget's name for display.
type TransactionWithBudget struct {
	Transaction
	BudgetName string `db:"budget_name"`
}

// TransactionSummary is the minimal shape the aggregation functions consume.
type TransactionSummary struct {
	Amount    decimal.Decimal `db:"amount"`
	IsExpense bool            `db:"is_expense"`
}

// BudgetSummary is a budget annotated with its derived progress metrics.
// The derived fields are recomputed on every read, never stored.
type BudgetSummary struct {
	Budget
	TotalSpent       decimal.Decimal
	Progress         float64
	TransactionCount int
}

// TotalSpent sums the amounts of expense entries. Income entries contribute
// zero regardless of amount.
func TotalSpent(transactions []TransactionSummary) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.IsExpense {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Progress reports how much of the limit the spent total consumes, as a
// percentage. May exceed 100 for historical data recorded before a limit was
// lowered. The limit is positive by construction (Budget.Validate).
func Progress(totalSpent, totalLimit decimal.Decimal) float64 {
	spent, _ := totalSpent.Float64()
	limit, _ := totalLimit.Float64()
	return spent / limit * 100
}

// Summarize computes the derived metrics for one budget from its linked
// transactions.
func Summarize(b Budget, transactions []TransactionSummary) BudgetSummary {
	spent := TotalSpent(transactions)
	return BudgetSummary{
		Budget:           b,
		TotalSpent:       spent,
		Progress:         Progress(spent, b.TotalLimit),
		TransactionCount: len(transactions),
	}
}
