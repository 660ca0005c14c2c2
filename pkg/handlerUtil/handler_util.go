package handlerUtil

import (
	"ProjectBudget/internal/api/auth"
	"ProjectBudget/internal/api/budget"
	"ProjectBudget/pkg/log"
	"ProjectBudget/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle maps a service error to an HTTP response. Errors that identify a
// specific user-facing condition get a stable code; everything else is a
// generic 500 with a trace ID the caller can report.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	switch {
	case errors.Is(err, auth.ErrUsernameAlreadyExists):
		h.logger.WithFields(fields).Warn("Username already exists")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username already exists",
			"code":  "USERNAME_ALREADY_EXISTS",
		})

	case errors.Is(err, auth.ErrEmailAlreadyExists):
		h.logger.WithFields(fields).Warn("Email already registered")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already registered",
			"code":  "EMAIL_ALREADY_EXISTS",
		})

	case errors.Is(err, auth.ErrInvalidCredentials):
		h.logger.WithFields(fields).Warn("Invalid credentials")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid username or password",
			"code":  "INVALID_CREDENTIALS",
		})

	case errors.Is(err, budget.ErrBudgetNotFound):
		h.logger.WithFields(fields).Warn("Budget not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Budget not found or unauthorized",
			"code":  "BUDGET_NOT_FOUND",
		})

	case errors.Is(err, budget.ErrTransactionNotFound):
		h.logger.WithFields(fields).Warn("Transaction not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found or unauthorized",
			"code":  "TRANSACTION_NOT_FOUND",
		})

	case errors.Is(err, budget.ErrBudgetLimitExceeded):
		h.logger.WithFields(fields).Warn("Budget limit exceeded")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This transaction would exceed the budget limit",
			"code":  "BUDGET_LIMIT_EXCEEDED",
		})
	}

	if status, ok := response.StatusOf(err); ok {
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	traceID := log.ErrorWithTraceID(fields, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":    "An unexpected error occurred",
		"trace_id": traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
