package budget

import (
	"ProjectBudget/pkg/response"
	"net/http"
)

var (
	ErrBudgetNotFound         = response.NewError(http.StatusNotFound, "budget not found")
	ErrTransactionNotFound    = response.NewError(http.StatusNotFound, "transaction not found")
	ErrBudgetLimitExceeded    = response.NewError(http.StatusBadRequest, "this transaction would exceed the budget limit")
	ErrInvalidBudgetName      = response.NewError(http.StatusBadRequest, "budget name must be between 1 and 100 characters")
	ErrInvalidLimit           = response.NewError(http.StatusBadRequest, "budget limit must be positive")
	ErrInvalidAmount          = response.NewError(http.StatusBadRequest, "transaction amount must be positive")
	ErrInvalidCategory        = response.NewError(http.StatusBadRequest, "category must be at most 50 characters")
	ErrInvalidBudgetReference = response.NewError(http.StatusBadRequest, "invalid budget reference")
	ErrCreateBudget           = response.NewError(http.StatusInternalServerError, "failed to create budget")
	ErrDeleteBudget           = response.NewError(http.StatusInternalServerError, "failed to delete budget")
	ErrCreateTransaction      = response.NewError(http.StatusInternalServerError, "failed to create transaction")
	ErrDeleteTransaction      = response.NewError(http.StatusInternalServerError, "failed to delete transaction")
)
