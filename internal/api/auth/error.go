package auth

import (
	"ProjectBudget/pkg/response"
	"net/http"
)

var (
	ErrUsernameAlreadyExists = response.NewError(http.StatusConflict, "username already exists")
	ErrEmailAlreadyExists    = response.NewError(http.StatusConflict, "email already registered")
	ErrUserNotFound          = response.NewError(http.StatusNotFound, "user not found")
	ErrInvalidCredentials    = response.NewError(http.StatusBadRequest, "username or password is wrong")
	ErrCreateUser            = response.NewError(http.StatusInternalServerError, "failed to create user")
)
