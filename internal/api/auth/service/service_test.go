package authService

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProjectBudget/internal/api/auth"
	authRepository "ProjectBudget/internal/api/auth/repository"
	"ProjectBudget/internal/entity"
)

type fakeUserRepo struct {
	users map[string]entity.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user entity.User) (entity.User, error) {
	if _, exists := f.users[user.Username]; exists {
		return entity.User{}, auth.ErrUsernameAlreadyExists
	}
	for _, u := range f.users {
		if user.Email != "" && u.Email == user.Email {
			return entity.User{}, auth.ErrEmailAlreadyExists
		}
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.Username] = user
	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (entity.User, error) {
	u, ok := f.users[username]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetAllUsers(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeRepository struct {
	users *fakeUserRepo
}

func (f *fakeRepository) NewClient(_ bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    f.users,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeBcrypt struct{}

func (fakeBcrypt) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeBcrypt) ComparePassword(hashPassword string, password string) error {
	if hashPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}

func newTestService() (AuthService, *fakeRepository) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := &fakeRepository{users: &fakeUserRepo{users: map[string]entity.User{}}}
	return New(logger, repo, fakeBcrypt{}), repo
}

func TestRegisterUserHashesPassword(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "alice",
		Password: "secret123",
		Name:     "Alice",
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "hashed:secret123", repo.users.users["alice"].Password)
}

func TestRegisterUserRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "alice",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "alice",
		Password: "different456",
	})

	assert.ErrorIs(t, err, auth.ErrUsernameAlreadyExists)
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "alice",
		Password: "secret123",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "bob",
		Password: "secret123",
		Email:    "alice@example.com",
	})

	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	svc, _ := newTestService()

	_, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "alice",
		Password: "secret123",
	})
	require.NoError(t, err)

	resp, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Username: "alice",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresInMinutes, 0.0)
}

func TestLoginHidesUnknownUsername(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Username: "ghost",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "alice",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Username: "alice",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestMakeUserData(t *testing.T) {
	data := MakeUserData(entity.User{ID: 7, Username: "alice", Email: "alice@example.com"})

	assert.Equal(t, int64(7), data["id"])
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "alice@example.com", data["email"])
}
