package budgetService

import (
	"ProjectBudget/internal/api/budget"
	budgetRepository "ProjectBudget/internal/api/budget/repository"
	"ProjectBudget/internal/entity"
	"ProjectBudget/pkg/redis"
	"ProjectBudget/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type BudgetService interface {
	Budget() BudgetDomain
	Transaction() TransactionDomain
}

type BudgetDomain interface {
	CreateBudget(ctx context.Context, req budget.CreateBudgetRequest) (entity.Budget, error)
	GetBudgetsByUserID(ctx context.Context, userID int64) ([]entity.BudgetSummary, error)
	DeleteBudget(ctx context.Context, userID int64, budgetID int64) error
}

type TransactionDomain interface {
	CreateTransaction(ctx context.Context, req budget.CreateTransactionRequest) (entity.TransactionWithBudget, error)
	GetTransactions(ctx context.Context, userID int64, budgetID int64, limit int) ([]entity.TransactionWithBudget, error)
	DeleteTransaction(ctx context.Context, userID int64, transactionID int64) error
}

type budgetService struct {
	log              *logrus.Logger
	budgetRepository budgetRepository.Repository
	redisServer      redis.IRedis
	utils            utils.IUtils

	budgetDomain      BudgetDomain
	transactionDomain TransactionDomain
}

func New(log *logrus.Logger, br budgetRepository.Repository, redisServer redis.IRedis, utils utils.IUtils) BudgetService {
	s := &budgetService{
		log:              log,
		budgetRepository: br,
		redisServer:      redisServer,
		utils:            utils,
	}

	s.budgetDomain = &budgetDomainImpl{s}
	s.transactionDomain = &transactionDomainImpl{s}

	return s
}

func (s *budgetService) Budget() BudgetDomain {
	return s.budgetDomain
}

func (s *budgetService) Transaction() TransactionDomain {
	return s.transactionDomain
}

type budgetDomainImpl struct {
	*budgetService
}

type transactionDomainImpl struct {
	*budgetService
}
