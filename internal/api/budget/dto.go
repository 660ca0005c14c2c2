package budget

import (
	"github.com/shopspring/decimal"
)

type CreateBudgetRequest struct {
	UserID      int64           `json:"-"`
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description"`
	TotalLimit  decimal.Decimal `json:"total_limit" validate:"required"`
}

type CreateTransactionRequest struct {
	UserID      int64           `json:"-"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	IsExpense   *bool           `json:"is_expense" validate:"required"`
	Category    string          `json:"category" validate:"omitempty,max=50"`
	Description string          `json:"description"`
	BudgetID    int64           `json:"budget_id" validate:"omitempty,gt=0"`
}

type BudgetResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	TotalLimit  decimal.Decimal `json:"total_limit"`
	CreatedAt   string          `json:"created_at"`
}

type BudgetSummaryResponse struct {
	BudgetResponse
	TotalSpent       decimal.Decimal `json:"total_spent"`
	Progress         float64         `json:"progress"`
	TransactionCount int             `json:"transaction_count"`
}

type TransactionResponse struct {
	ID              int64           `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	IsExpense       bool            `json:"is_expense"`
	Category        string          `json:"category,omitempty"`
	Description     string          `json:"description,omitempty"`
	BudgetID        int64           `json:"budget_id,omitempty"`
	BudgetName      string          `json:"budget_name,omitempty"`
	TransactionDate string          `json:"transaction_date"`
}

type BudgetListResponse struct {
	Budgets []BudgetSummaryResponse `json:"budgets"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
