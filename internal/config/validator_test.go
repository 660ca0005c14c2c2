package config

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectBudget/internal/api/auth"
	"ProjectBudget/internal/api/budget"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func boolPtr(b bool) *bool { return &b }

func TestValidatorCreateUserRequest(t *testing.T) {
	v := NewValidator()

	valid := auth.CreateUserRequest{
		Username: "alice",
		Password: "secret123",
		Name:     "Alice",
		Email:    "alice@example.com",
	}
	require.NoError(t, v.Struct(valid))

	t.Run("optional fields may be empty", func(t *testing.T) {
		req := valid
		req.Name = ""
		req.Email = ""
		assert.NoError(t, v.Struct(req))
	})

	t.Run("missing username", func(t *testing.T) {
		req := valid
		req.Username = ""
		assert.Error(t, v.Struct(req))
	})

	t.Run("username too short", func(t *testing.T) {
		req := valid
		req.Username = "ab"
		assert.Error(t, v.Struct(req))
	})

	t.Run("username too long", func(t *testing.T) {
		req := valid
		req.Username = strings.Repeat("a", 51)
		assert.Error(t, v.Struct(req))
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "12345"
		assert.Error(t, v.Struct(req))
	})

	t.Run("name too long", func(t *testing.T) {
		req := valid
		req.Name = strings.Repeat("a", 51)
		assert.Error(t, v.Struct(req))
	})

	t.Run("malformed email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-address"
		assert.Error(t, v.Struct(req))
	})
}

func TestValidatorLoginUserRequest(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Struct(auth.LoginUserRequest{
		Username: "alice",
		Password: "secret123",
	}))

	t.Run("missing username", func(t *testing.T) {
		assert.Error(t, v.Struct(auth.LoginUserRequest{Password: "secret123"}))
	})

	t.Run("missing password", func(t *testing.T) {
		assert.Error(t, v.Struct(auth.LoginUserRequest{Username: "alice"}))
	})
}

func TestValidatorCreateBudgetRequest(t *testing.T) {
	v := NewValidator()

	valid := budget.CreateBudgetRequest{
		Name:       "Groceries",
		TotalLimit: dec("100"),
	}
	require.NoError(t, v.Struct(valid))

	t.Run("name at upper bound", func(t *testing.T) {
		req := valid
		req.Name = strings.Repeat("a", 100)
		assert.NoError(t, v.Struct(req))
	})

	t.Run("missing name", func(t *testing.T) {
		req := valid
		req.Name = ""
		assert.Error(t, v.Struct(req))
	})

	t.Run("name too long", func(t *testing.T) {
		req := valid
		req.Name = strings.Repeat("a", 101)
		assert.Error(t, v.Struct(req))
	})

	t.Run("missing total limit", func(t *testing.T) {
		req := valid
		req.TotalLimit = decimal.Decimal{}
		assert.Error(t, v.Struct(req))
	})
}

func TestValidatorCreateTransactionRequest(t *testing.T) {
	v := NewValidator()

	valid := budget.CreateTransactionRequest{
		Amount:    dec("25.50"),
		IsExpense: boolPtr(true),
		Category:  "food",
		BudgetID:  1,
	}
	require.NoError(t, v.Struct(valid))

	t.Run("income flag is still present", func(t *testing.T) {
		req := valid
		req.IsExpense = boolPtr(false)
		assert.NoError(t, v.Struct(req))
	})

	t.Run("missing expense flag", func(t *testing.T) {
		req := valid
		req.IsExpense = nil
		assert.Error(t, v.Struct(req))
	})

	t.Run("missing amount", func(t *testing.T) {
		req := valid
		req.Amount = decimal.Decimal{}
		assert.Error(t, v.Struct(req))
	})

	t.Run("unlinked transaction", func(t *testing.T) {
		req := valid
		req.BudgetID = 0
		assert.NoError(t, v.Struct(req))
	})

	t.Run("negative budget reference", func(t *testing.T) {
		req := valid
		req.BudgetID = -1
		assert.Error(t, v.Struct(req))
	})

	t.Run("optional category may be empty", func(t *testing.T) {
		req := valid
		req.Category = ""
		assert.NoError(t, v.Struct(req))
	})

	t.Run("category too long", func(t *testing.T) {
		req := valid
		req.Category = strings.Repeat("a", 51)
		assert.Error(t, v.Struct(req))
	})
}
