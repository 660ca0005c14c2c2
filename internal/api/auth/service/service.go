package authService

import (
	"ProjectBudget/internal/api/auth"
	authRepository "ProjectBudget/internal/api/auth/repository"
	"ProjectBudget/internal/entity"
	"ProjectBudget/pkg/bcrypt"
	"context"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
}

type UserDomain interface {
	RegisterUser(c context.Context, req auth.CreateUserRequest) (entity.User, error)
	GetAllUsers(c context.Context) ([]entity.User, error)
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository
	bcryptUtils    bcrypt.IBcrypt

	userDomain UserDomain
	authDomain AuthDomain
}

func New(log *logrus.Logger, ar authRepository.Repository, bcryptUtils bcrypt.IBcrypt) AuthService {
	s := &authService{
		log:            log,
		authRepository: ar,
		bcryptUtils:    bcryptUtils,
	}

	s.userDomain = &userDomainImpl{s}
	s.authDomain = &authDomainImpl{s}

	return s
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

type userDomainImpl struct {
	*authService
}

type authDomainImpl struct {
	*authService
}

// MakeUserData builds the claim set the token middleware later resolves back
// into an identity.
func MakeUserData(user entity.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}
}
