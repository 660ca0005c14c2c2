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

type TransactionDB struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	BudgetID        sql.NullInt64   `db:"budget_id"`
	Amount          decimal.Decimal `db:"amount"`
	IsExpense       bool            `db:"is_expense"`
	Category        sql.NullString  `db:"category"`
	Description     sql.NullString  `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

type TransactionWithBudgetDB struct {
	TransactionDB
	BudgetName sql.NullString `db:"budget_name"`
}

func (r *transactionRepository) CreateTransaction(c context.Context, t entity.Transaction) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)

	var budgetID interface{}
	if t.BudgetID > 0 {
		budgetID = t.BudgetID
	}

	argsKV := map[string]interface{}{
		"user_id":          t.UserID,
		"budget_id":        budgetID,
		"amount":           t.Amount,
		"is_expense":       t.IsExpense,
		"category":         t.Category,
		"description":      t.Description,
		"transaction_date": t.TransactionDate,
		"created_at":       time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTransaction")
		return entity.Transaction{}, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(c, query, args...).Scan(&id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating transaction")

		return entity.Transaction{}, err
	}

	t.ID = id

	return t, nil
}

func (r *transactionRepository) GetTransactionByIDAndUser(c context.Context, id int64, userID int64) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var t TransactionDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetTransactionByIDAndUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionByIDAndUser named query preparation err")

		return entity.Transaction{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":     requestID,
				"transaction_id": id,
			}).Warn("GetTransactionByIDAndUser no rows found")
			return entity.Transaction{}, budget.ErrTransactionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionByIDAndUser execution err")
		return entity.Transaction{}, err
	}

	return r.makeTransaction(t), nil
}

func (r *transactionRepository) GetTransactionsByUserID(c context.Context, userID int64, budgetID int64, limit int) ([]entity.TransactionWithBudget, error) {
	requestID := contextPkg.GetRequestID(c)
	var transactions []TransactionWithBudgetDB

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	}

	queryToUse := queryGetTransactionsByUserID
	if budgetID > 0 {
		queryToUse = queryGetTransactionsByUserIDAndBudget
		argsKV["budget_id"] = budgetID
	}

	query, args, err := sqlx.Named(queryToUse, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionsByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &transactions, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionsByUserID execution err")
		return nil, err
	}

	result := make([]entity.TransactionWithBudget, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, entity.TransactionWithBudget{
			Transaction: r.makeTransaction(t.TransactionDB),
			BudgetName:  t.BudgetName.String,
		})
	}

	return result, nil
}

// GetSummariesByBudgetID fetches only the (amount, is_expense) pairs the
// aggregation functions need.
func (r *transactionRepository) GetSummariesByBudgetID(c context.Context, budgetID int64) ([]entity.TransactionSummary, error) {
	requestID := contextPkg.GetRequestID(c)
	var summaries []entity.TransactionSummary

	argsKV := map[string]interface{}{
		"budget_id": budgetID,
	}

	query, args, err := sqlx.Named(queryGetSummariesByBudgetID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSummariesByBudgetID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &summaries, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSummariesByBudgetID execution err")
		return nil, err
	}

	return summaries, nil
}

func (r *transactionRepository) DeleteTransactionByID(c context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeleteTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransactionByID named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransactionByID execution err")

		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransactionByID rows affected err")

		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id":     requestID,
			"transaction_id": id,
		}).Warn("DeleteTransactionByID no rows affected")

		return budget.ErrTransactionNotFound
	}

	return nil
}

// DeleteTransactionsByBudgetID removes every transaction referencing the
// budget. Zero rows affected is not an error: a budget may have no
// transactions.
func (r *transactionRepository) DeleteTransactionsByBudgetID(c context.Context, budgetID int64) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"budget_id": budgetID,
	}

	query, args, err := sqlx.Named(queryDeleteTransactionsByBudgetID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransactionsByBudgetID named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransactionsByBudgetID execution err")

		return err
	}

	return nil
}

func (r *transactionRepository) makeTransaction(t TransactionDB) entity.Transaction {
	return entity.Transaction{
		ID:              t.ID,
		UserID:          t.UserID,
		BudgetID:        t.BudgetID.Int64,
		Amount:          t.Amount,
		IsExpense:       t.IsExpense,
		Category:        t.Category.String,
		Description:     t.Description.String,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
}
