package budgetHandler

import (
	"ProjectBudget/internal/api/budget"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"ProjectBudget/pkg/handlerUtil"
	jwtPkg "ProjectBudget/pkg/jwt"
	"ProjectBudget/pkg/log"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *BudgetHandler) CreateTransaction(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create transaction request")

	var req budget.CreateTransactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	req.UserID = userData.ID

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	created, err := h.budgetService.Transaction().CreateTransaction(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_transaction")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, makeTransactionResponse(created))
	}
}

func (h *BudgetHandler) GetTransactions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get transactions request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var budgetID int64
	if raw := ctx.Query("budget_id"); raw != "" {
		budgetID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || budgetID <= 0 {
			return errHandler.HandleValidationError(ctx, requestID,
				errors.New("invalid budget_id parameter"), ctx.Path())
		}
	}

	limit := ctx.QueryInt("limit")

	transactions, err := h.budgetService.Transaction().GetTransactions(c, userData.ID, budgetID, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_transactions")
	}

	transactionResponses := make([]budget.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		transactionResponses = append(transactionResponses, makeTransactionResponse(t))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, budget.TransactionListResponse{
			Transactions: transactionResponses,
		})
	}
}

func (h *BudgetHandler) DeleteTransaction(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing delete transaction request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	transactionID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || transactionID <= 0 {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("transaction ID is required"), ctx.Path())
	}

	if err := h.budgetService.Transaction().DeleteTransaction(c, userData.ID, transactionID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_transaction")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"success": true,
		})
	}
}

func makeTransactionResponse(t entity.TransactionWithBudget) budget.TransactionResponse {
	return budget.TransactionResponse{
		ID:              t.ID,
		Amount:          t.Amount,
		IsExpense:       t.IsExpense,
		Category:        t.Category,
		Description:     t.Description,
		BudgetID:        t.BudgetID,
		BudgetName:      t.BudgetName,
		TransactionDate: t.TransactionDate.Format(time.RFC3339),
	}
}
