package budgetHandler

import (
	budgetService "ProjectBudget/internal/api/budget/service"
	"ProjectBudget/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BudgetHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	budgetService budgetService.BudgetService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	budgetService budgetService.BudgetService,
) *BudgetHandler {
	return &BudgetHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		budgetService: budgetService,
	}
}

func (h *BudgetHandler) Start(srv fiber.Router) {
	budgets := srv.Group("/budgets")
	budgets.Post("/", h.middleware.NewTokenMiddleware, h.CreateBudget)
	budgets.Get("/", h.middleware.NewTokenMiddleware, h.GetBudgets)
	budgets.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteBudget)

	transactions := srv.Group("/transactions")
	transactions.Post("/", h.middleware.NewTokenMiddleware, h.CreateTransaction)
	transactions.Get("/", h.middleware.NewTokenMiddleware, h.GetTransactions)
	transactions.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteTransaction)
}
