package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	contextPkg "ProjectBudget/pkg/context"
	"ProjectBudget/pkg/utils"
)

const RequestIDKey = "request_id"

func NewRequestIDMiddleware() fiber.Handler {
	idGenerator := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			generated, err := idGenerator.NewULIDFromTimestamp(time.Now())
			if err != nil {
				requestID = "unknown"
			} else {
				requestID = generated
			}
		}

		c.Locals(RequestIDKey, requestID)
		c.Set("X-Request-ID", requestID)

		userCtx := contextPkg.WithRequestID(c.UserContext(), requestID)
		c.SetUserContext(userCtx)

		return c.Next()
	}
}
