package budgetService

import (
	"ProjectBudget/internal/api/budget"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *budgetDomainImpl) CreateBudget(ctx context.Context, req budget.CreateBudgetRequest) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	b := entity.Budget{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		TotalLimit:  req.TotalLimit,
	}

	if err := b.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid budget data")
		return entity.Budget{}, err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Budget{}, err
	}

	created, err := repo.Budget.CreateBudget(ctx, b)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create budget")
		return entity.Budget{}, budget.ErrCreateBudget
	}

	return created, nil
}

func (s *budgetDomainImpl) GetBudgetsByUserID(ctx context.Context, userID int64) ([]entity.BudgetSummary, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	budgets, err := repo.Budget.GetBudgetsByUserID(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to get budgets by user ID")
		return nil, err
	}

	summaries := make([]entity.BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		transactions, err := repo.Transaction.GetSummariesByBudgetID(ctx, b.ID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"budget_id":  b.ID,
				"error":      err.Error(),
			}).Error("Failed to get transaction summaries for budget")
			return nil, err
		}

		summaries = append(summaries, entity.Summarize(b, transactions))
	}

	return summaries, nil
}

// DeleteBudget removes the budget and every transaction referencing it as one
// atomic unit. Ownership is checked first; the cascade runs inside a single
// database transaction so a failure at any step rolls the whole thing back.
func (s *budgetDomainImpl) DeleteBudget(ctx context.Context, userID int64, budgetID int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	unlock := s.lockBudget(ctx, budgetID)
	defer unlock()

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create transactional repository client")
		return err
	}

	if _, err := repo.Budget.GetBudgetByIDAndUser(ctx, budgetID, userID); err != nil {
		s.rollback(repo.Rollback, requestID, "budget lookup")
		return err
	}

	if err := repo.Transaction.DeleteTransactionsByBudgetID(ctx, budgetID); err != nil {
		s.rollback(repo.Rollback, requestID, "transaction cascade")
		return budget.ErrDeleteBudget
	}

	if err := repo.Budget.DeleteBudgetByID(ctx, budgetID); err != nil {
		s.rollback(repo.Rollback, requestID, "budget delete")
		return budget.ErrDeleteBudget
	}

	// A failed Commit leaves the transaction finished; rolling back on top
	// of it would only report sql.ErrTxDone.
	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  budgetID,
			"error":      err.Error(),
		}).Error("Failed to commit budget delete cascade")
		return budget.ErrDeleteBudget
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"budget_id":  budgetID,
	}).Info("Budget and linked transactions deleted")

	return nil
}
