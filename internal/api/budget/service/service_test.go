package budgetService

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectBudget/internal/api/budget"
	budgetRepository "ProjectBudget/internal/api/budget/repository"
	"ProjectBudget/internal/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func boolPtr(b bool) *bool { return &b }

type fakeBudgetRepo struct {
	budgets   map[int64]entity.Budget
	deleted   []int64
	deleteErr error
}

func (f *fakeBudgetRepo) CreateBudget(_ context.Context, b entity.Budget) (entity.Budget, error) {
	b.ID = int64(len(f.budgets) + 1)
	f.budgets[b.ID] = b
	return b, nil
}

func (f *fakeBudgetRepo) GetBudgetsByUserID(_ context.Context, userID int64) ([]entity.Budget, error) {
	var out []entity.Budget
	for _, b := range f.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) GetBudgetByIDAndUser(_ context.Context, id int64, userID int64) (entity.Budget, error) {
	b, ok := f.budgets[id]
	if !ok || b.UserID != userID {
		return entity.Budget{}, budget.ErrBudgetNotFound
	}
	return b, nil
}

func (f *fakeBudgetRepo) DeleteBudgetByID(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.budgets[id]; !ok {
		return budget.ErrBudgetNotFound
	}
	delete(f.budgets, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTransactionRepo struct {
	summaries      map[int64][]entity.TransactionSummary
	listed         []entity.TransactionWithBudget
	created        []entity.Transaction
	cascadeDeleted []int64
	lastLimit      int
	createErr      error
	cascadeErr     error
}

func (f *fakeTransactionRepo) CreateTransaction(_ context.Context, t entity.Transaction) (entity.Transaction, error) {
	if f.createErr != nil {
		return entity.Transaction{}, f.createErr
	}
	t.ID = int64(len(f.created) + 1)
	f.created = append(f.created, t)
	return t, nil
}

func (f *fakeTransactionRepo) GetTransactionByIDAndUser(_ context.Context, id int64, userID int64) (entity.Transaction, error) {
	for _, t := range f.created {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return entity.Transaction{}, budget.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) GetTransactionsByUserID(_ context.Context, _ int64, _ int64, limit int) ([]entity.TransactionWithBudget, error) {
	f.lastLimit = limit
	return f.listed, nil
}

func (f *fakeTransactionRepo) GetSummariesByBudgetID(_ context.Context, budgetID int64) ([]entity.TransactionSummary, error) {
	return f.summaries[budgetID], nil
}

func (f *fakeTransactionRepo) DeleteTransactionByID(_ context.Context, id int64) error {
	for i, t := range f.created {
		if t.ID == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return budget.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) DeleteTransactionsByBudgetID(_ context.Context, budgetID int64) error {
	if f.cascadeErr != nil {
		return f.cascadeErr
	}
	f.cascadeDeleted = append(f.cascadeDeleted, budgetID)
	return nil
}

type fakeRepository struct {
	budgets      *fakeBudgetRepo
	transactions *fakeTransactionRepo
	commits      int
	rollbacks    int
	clientErr    error
	commitErr    error
}

func (f *fakeRepository) NewClient(_ bool) (budgetRepository.Client, error) {
	if f.clientErr != nil {
		return budgetRepository.Client{}, f.clientErr
	}
	return budgetRepository.Client{
		Budget:      f.budgets,
		Transaction: f.transactions,
		Commit: func() error {
			f.commits++
			return f.commitErr
		},
		Rollback: func() error {
			f.rollbacks++
			return nil
		},
	}, nil
}

type fakeRedis struct {
	locks      map[string]string
	acquires   int
	releases   int
	acquireErr error
}

func (f *fakeRedis) AcquireLock(_ context.Context, key string, token string, _ time.Duration) (bool, error) {
	f.acquires++
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if _, held := f.locks[key]; held {
		return false, nil
	}
	f.locks[key] = token
	return true, nil
}

func (f *fakeRedis) ReleaseLock(_ context.Context, key string, token string) error {
	f.releases++
	if f.locks[key] == token {
		delete(f.locks, key)
	}
	return nil
}

type fakeUtils struct{}

func (fakeUtils) NewULIDFromTimestamp(_ time.Time) (string, error) {
	return "01TESTLOCKTOKEN", nil
}

func newTestService(repo *fakeRepository, redisServer *fakeRedis) BudgetService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger, repo, redisServer, fakeUtils{})
}

func newFixture() (*fakeRepository, *fakeRedis) {
	repo := &fakeRepository{
		budgets: &fakeBudgetRepo{budgets: map[int64]entity.Budget{
			1: {ID: 1, UserID: 1, Name: "Groceries", TotalLimit: dec("100")},
		}},
		transactions: &fakeTransactionRepo{summaries: map[int64][]entity.TransactionSummary{
			1: {{Amount: dec("60"), IsExpense: true}},
		}},
	}
	redisServer := &fakeRedis{locks: map[string]string{}}
	return repo, redisServer
}

func TestCreateTransactionRejectsOverLimit(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	_, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("50"),
		IsExpense: boolPtr(true),
		BudgetID:  1,
	})

	assert.ErrorIs(t, err, budget.ErrBudgetLimitExceeded)
	assert.Empty(t, repo.transactions.created)
	assert.Equal(t, 1, repo.rollbacks)
	assert.Equal(t, 0, repo.commits)
	assert.Empty(t, redisServer.locks, "lock must be released after rejection")
}

func TestCreateTransactionAllowsExactLimit(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	created, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("40"),
		IsExpense: boolPtr(true),
		Category:  "food",
		BudgetID:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Groceries", created.BudgetName)
	assert.Len(t, repo.transactions.created, 1)
	assert.Equal(t, 1, repo.commits)
	assert.Equal(t, 0, repo.rollbacks)
	assert.Empty(t, redisServer.locks)
}

func TestCreateTransactionIncomeBypassesLimit(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	created, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("5000"),
		IsExpense: boolPtr(false),
		BudgetID:  1,
	})

	require.NoError(t, err)
	assert.False(t, created.IsExpense)
	assert.Len(t, repo.transactions.created, 1)
	assert.Equal(t, 1, repo.commits)
}

func TestCreateTransactionUnlinkedSkipsLock(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	created, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("9999.99"),
		IsExpense: boolPtr(true),
	})

	require.NoError(t, err)
	assert.Zero(t, created.BudgetID)
	assert.Empty(t, created.BudgetName)
	assert.Equal(t, 0, redisServer.acquires)
	assert.Len(t, repo.transactions.created, 1)
}

func TestCreateTransactionSetsServerDate(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	before := time.Now()
	created, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("5"),
		IsExpense: boolPtr(true),
	})

	require.NoError(t, err)
	assert.False(t, created.TransactionDate.Before(before))
	assert.False(t, created.TransactionDate.After(time.Now()))
}

func TestCreateTransactionHidesForeignBudget(t *testing.T) {
	repo, redisServer := newFixture()
	repo.budgets.budgets[2] = entity.Budget{ID: 2, UserID: 99, Name: "Other", TotalLimit: dec("100")}
	svc := newTestService(repo, redisServer)

	_, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("10"),
		IsExpense: boolPtr(true),
		BudgetID:  2,
	})

	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
	assert.Empty(t, repo.transactions.created)
	assert.Equal(t, 1, repo.rollbacks)
}

func TestCreateTransactionProceedsWhenRedisDown(t *testing.T) {
	repo, redisServer := newFixture()
	redisServer.acquireErr = errors.New("connection refused")
	svc := newTestService(repo, redisServer)

	_, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("10"),
		IsExpense: boolPtr(true),
		BudgetID:  1,
	})

	require.NoError(t, err)
	assert.Len(t, repo.transactions.created, 1)
}

func TestCreateTransactionRejectsInvalidAmount(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	_, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("-5"),
		IsExpense: boolPtr(true),
	})

	assert.ErrorIs(t, err, budget.ErrInvalidAmount)
	assert.Empty(t, repo.transactions.created)
}

func TestGetTransactionsAppliesDefaultLimit(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	_, err := svc.Transaction().GetTransactions(context.Background(), 1, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 10, repo.transactions.lastLimit)
}

func TestDeleteTransactionHidesForeignTransaction(t *testing.T) {
	repo, redisServer := newFixture()
	repo.transactions.created = []entity.Transaction{{ID: 1, UserID: 99, Amount: dec("5")}}
	svc := newTestService(repo, redisServer)

	err := svc.Transaction().DeleteTransaction(context.Background(), 1, 1)

	assert.ErrorIs(t, err, budget.ErrTransactionNotFound)
	assert.Len(t, repo.transactions.created, 1)
}

func TestDeleteTransaction(t *testing.T) {
	repo, redisServer := newFixture()
	repo.transactions.created = []entity.Transaction{{ID: 1, UserID: 1, Amount: dec("5")}}
	svc := newTestService(repo, redisServer)

	err := svc.Transaction().DeleteTransaction(context.Background(), 1, 1)

	require.NoError(t, err)
	assert.Empty(t, repo.transactions.created)
}

func TestCreateBudget(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	created, err := svc.Budget().CreateBudget(context.Background(), budget.CreateBudgetRequest{
		UserID:     1,
		Name:       "Travel",
		TotalLimit: dec("750"),
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.UserID)
}

func TestCreateBudgetRejectsNonPositiveLimit(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	_, err := svc.Budget().CreateBudget(context.Background(), budget.CreateBudgetRequest{
		UserID:     1,
		Name:       "Travel",
		TotalLimit: decimal.Zero,
	})

	assert.ErrorIs(t, err, budget.ErrInvalidLimit)
}

func TestGetBudgetsComputesSummaries(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	summaries, err := svc.Budget().GetBudgetsByUserID(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.True(t, dec("60").Equal(summaries[0].TotalSpent))
	assert.InDelta(t, 60.0, summaries[0].Progress, 0.0001)
	assert.Equal(t, 1, summaries[0].TransactionCount)
}

func TestDeleteBudgetCascades(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	err := svc.Budget().DeleteBudget(context.Background(), 1, 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.transactions.cascadeDeleted)
	assert.Equal(t, []int64{1}, repo.budgets.deleted)
	assert.Equal(t, 1, repo.commits)
	assert.Empty(t, redisServer.locks)
}

func TestDeleteBudgetHidesForeignBudget(t *testing.T) {
	repo, redisServer := newFixture()
	svc := newTestService(repo, redisServer)

	err := svc.Budget().DeleteBudget(context.Background(), 42, 1)

	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
	assert.Empty(t, repo.transactions.cascadeDeleted)
	assert.Empty(t, repo.budgets.deleted)
	assert.Equal(t, 1, repo.rollbacks)
}

func TestCreateTransactionSkipsRollbackOnCommitFailure(t *testing.T) {
	repo, redisServer := newFixture()
	repo.commitErr = errors.New("connection reset")
	svc := newTestService(repo, redisServer)

	_, err := svc.Transaction().CreateTransaction(context.Background(), budget.CreateTransactionRequest{
		UserID:    1,
		Amount:    dec("10"),
		IsExpense: boolPtr(true),
		BudgetID:  1,
	})

	assert.ErrorIs(t, err, budget.ErrCreateTransaction)
	assert.Equal(t, 1, repo.commits)
	assert.Equal(t, 0, repo.rollbacks, "a finished transaction must not be rolled back again")
	assert.Empty(t, redisServer.locks)
}

func TestDeleteBudgetSkipsRollbackOnCommitFailure(t *testing.T) {
	repo, redisServer := newFixture()
	repo.commitErr = errors.New("connection reset")
	svc := newTestService(repo, redisServer)

	err := svc.Budget().DeleteBudget(context.Background(), 1, 1)

	assert.ErrorIs(t, err, budget.ErrDeleteBudget)
	assert.Equal(t, 1, repo.commits)
	assert.Equal(t, 0, repo.rollbacks, "a finished transaction must not be rolled back again")
}

func TestDeleteBudgetRollsBackOnCascadeFailure(t *testing.T) {
	repo, redisServer := newFixture()
	repo.transactions.cascadeErr = errors.New("db down")
	svc := newTestService(repo, redisServer)

	err := svc.Budget().DeleteBudget(context.Background(), 1, 1)

	assert.ErrorIs(t, err, budget.ErrDeleteBudget)
	assert.Empty(t, repo.budgets.deleted)
	assert.Equal(t, 1, repo.rollbacks)
	assert.Equal(t, 0, repo.commits)
}
