package budgetRepository

import (
	"ProjectBudget/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

// NewClient returns a client whose sub-repositories share one executor.
// With tx=true every operation runs inside a single database transaction
// until Commit or Rollback is called; the budget-delete cascade depends on
// this boundary.
func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Budget:      &budgetRepository{q: sqlExecutor, log: r.log},
		Transaction: &transactionRepository{q: sqlExecutor, log: r.log},
		Commit:      commitFunc,
		Rollback:    rollbackFunc,
	}, nil
}

type Client struct {
	Budget interface {
		CreateBudget(c context.Context, b entity.Budget) (entity.Budget, error)
		GetBudgetsByUserID(c context.Context, userID int64) ([]entity.Budget, error)
		GetBudgetByIDAndUser(c context.Context, id int64, userID int64) (entity.Budget, error)
		DeleteBudgetByID(c context.Context, id int64) error
	}

	Transaction interface {
		CreateTransaction(c context.Context, t entity.Transaction) (entity.Transaction, error)
		GetTransactionByIDAndUser(c context.Context, id int64, userID int64) (entity.Transaction, error)
		GetTransactionsByUserID(c context.Context, userID int64, budgetID int64, limit int) ([]entity.TransactionWithBudget, error)
		GetSummariesByBudgetID(c context.Context, budgetID int64) ([]entity.TransactionSummary, error)
		DeleteTransactionByID(c context.Context, id int64) error
		DeleteTransactionsByBudgetID(c context.Context, budgetID int64) error
	}

	Commit   func() error
	Rollback func() error
}

type budgetRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type transactionRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
