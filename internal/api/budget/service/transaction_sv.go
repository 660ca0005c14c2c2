package budgetService

import (
	"ProjectBudget/internal/api/budget"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const defaultTransactionLimit = 10

// CreateTransaction persists a money movement. When the transaction is linked
// to a budget the budget is fetched owner-scoped, and for expenses the
// projected total (existing expense sum + this amount) must not exceed the
// budget's limit. The read-check-write sequence runs under the per-budget
// lock so concurrent creates against the same budget serialize.
func (s *transactionDomainImpl) CreateTransaction(ctx context.Context, req budget.CreateTransactionRequest) (entity.TransactionWithBudget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	t := entity.Transaction{
		UserID:      req.UserID,
		BudgetID:    req.BudgetID,
		Amount:      req.Amount,
		IsExpense:   req.IsExpense != nil && *req.IsExpense,
		Category:    req.Category,
		Description: req.Description,
		// Always the moment of creation, never client-supplied.
		TransactionDate: time.Now(),
	}

	if err := t.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid transaction data")
		return entity.TransactionWithBudget{}, err
	}

	if t.BudgetID == 0 {
		repo, err := s.budgetRepository.NewClient(false)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to create repository client")
			return entity.TransactionWithBudget{}, err
		}

		created, err := repo.Transaction.CreateTransaction(ctx, t)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to create transaction")
			return entity.TransactionWithBudget{}, budget.ErrCreateTransaction
		}

		return entity.TransactionWithBudget{Transaction: created}, nil
	}

	unlock := s.lockBudget(ctx, t.BudgetID)
	defer unlock()

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create transactional repository client")
		return entity.TransactionWithBudget{}, err
	}

	b, err := repo.Budget.GetBudgetByIDAndUser(ctx, t.BudgetID, t.UserID)
	if err != nil {
		s.rollback(repo.Rollback, requestID, "budget lookup")
		return entity.TransactionWithBudget{}, err
	}

	transactions, err := repo.Transaction.GetSummariesByBudgetID(ctx, t.BudgetID)
	if err != nil {
		s.rollback(repo.Rollback, requestID, "summary fetch")
		return entity.TransactionWithBudget{}, err
	}

	if t.IsExpense {
		projected := entity.TotalSpent(transactions).Add(t.Amount)
		if projected.GreaterThan(b.TotalLimit) {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"budget_id":   b.ID,
				"total_limit": b.TotalLimit.String(),
				"projected":   projected.String(),
			}).Warn("Transaction rejected, budget limit exceeded")
			s.rollback(repo.Rollback, requestID, "limit check")
			return entity.TransactionWithBudget{}, budget.ErrBudgetLimitExceeded
		}
	}

	created, err := repo.Transaction.CreateTransaction(ctx, t)
	if err != nil {
		s.rollback(repo.Rollback, requestID, "transaction insert")
		return entity.TransactionWithBudget{}, budget.ErrCreateTransaction
	}

	// A failed Commit leaves the transaction finished; rolling back on top
	// of it would only report sql.ErrTxDone.
	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction create")
		return entity.TransactionWithBudget{}, budget.ErrCreateTransaction
	}

	return entity.TransactionWithBudget{Transaction: created, BudgetName: b.Name}, nil
}

func (s *transactionDomainImpl) GetTransactions(ctx context.Context, userID int64, budgetID int64, limit int) ([]entity.TransactionWithBudget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	transactions, err := repo.Transaction.GetTransactionsByUserID(ctx, userID, budgetID, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to get transactions")
		return nil, err
	}

	return transactions, nil
}

func (s *transactionDomainImpl) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if _, err := repo.Transaction.GetTransactionByIDAndUser(ctx, transactionID, userID); err != nil {
		return err
	}

	if err := repo.Transaction.DeleteTransactionByID(ctx, transactionID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":     requestID,
			"transaction_id": transactionID,
			"error":          err.Error(),
		}).Error("Failed to delete transaction")
		return budget.ErrDeleteTransaction
	}

	return nil
}

func (s *budgetService) rollback(rollbackFunc func() error, requestID string, stage string) {
	if err := rollbackFunc(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"stage":      stage,
			"error":      err.Error(),
		}).Error("Rollback failed")
	}
}
