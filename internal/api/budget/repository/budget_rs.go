package budgetRepository

import (
	"ProjectBudget/internal/api/budget"
	"ProjectBudget/internal/entity"
	contextPkg "ProjectBudget/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BudgetDB struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Name        sql.NullString  `db:"name"`
	Description sql.NullString  `db:"description"`
	TotalLimit  decimal.Decimal `db:"total_limit"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r *budgetRepository) CreateBudget(c context.Context, b entity.Budget) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now()
	argsKV := map[string]interface{}{
		"user_id":     b.UserID,
		"name":        b.Name,
		"description": b.Description,
		"total_limit": b.TotalLimit,
		"created_at":  now,
		"updated_at":  now,
	}

	query, args, err := sqlx.Named(queryCreateBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBudget")
		return entity.Budget{}, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating budget")

		return entity.Budget{}, err
	}

	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now

	return b, nil
}

func (r *budgetRepository) GetBudgetsByUserID(c context.Context, userID int64) ([]entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var budgets []BudgetDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetBudgetsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetsByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &budgets, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetsByUserID execution err")
		return nil, err
	}

	result := make([]entity.Budget, 0, len(budgets))
	for _, b := range budgets {
		result = append(result, r.makeBudget(b))
	}

	return result, nil
}

// GetBudgetByIDAndUser is owner-scoped: a budget that exists under another
// owner is indistinguishable from one that does not exist.
func (r *budgetRepository) GetBudgetByIDAndUser(c context.Context, id int64, userID int64) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var b BudgetDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetBudgetByIDAndUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByIDAndUser named query preparation err")

		return entity.Budget{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"budget_id":  id,
			}).Warn("GetBudgetByIDAndUser no rows found")
			return entity.Budget{}, budget.ErrBudgetNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByIDAndUser execution err")
		return entity.Budget{}, err
	}

	return r.makeBudget(b), nil
}

func (r *budgetRepository) DeleteBudgetByID(c context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeleteBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBudgetByID named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBudgetByID execution err")

		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBudgetByID rows affected err")

		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  id,
		}).Warn("DeleteBudgetByID no rows affected")

		return budget.ErrBudgetNotFound
	}

	return nil
}

func (r *budgetRepository) makeBudget(b BudgetDB) entity.Budget {
	return entity.Budget{
		ID:          b.ID,
		UserID:      b.UserID,
		Name:        b.Name.String,
		Description: b.Description.String,
		TotalLimit:  b.TotalLimit,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
