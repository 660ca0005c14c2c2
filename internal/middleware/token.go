package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"ProjectBudget/internal/entity"
	jwtPkg "ProjectBudget/pkg/jwt"
)

const AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)

	token, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err,
		}).Warn("[TokenMiddleware] Failed to verify access token")
		return unauthorized(ctx)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("[TokenMiddleware] Token carries no map claims")
		return unauthorized(ctx)
	}

	userID, ok := claims["id"].(float64)
	if !ok || userID <= 0 || userID != float64(int64(userID)) {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("[TokenMiddleware] Token carries no usable user id")
		return unauthorized(ctx)
	}

	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)

	ctx.Locals("user", entity.UserLoginData{
		ID:       int64(userID),
		Username: username,
		Email:    email,
	})

	return ctx.Next()
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid or missing access token",
		"code":  "UNAUTHORIZED",
	})
}
