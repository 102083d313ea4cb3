package middleware

import (
	"github.com/gofiber/fiber/v3"

	"docscan/internal/scanner/ports/services"
	"docscan/pkg/logger"
)

const ErrorNotAuthenticated = "not authenticated"

// NewSessionMiddleware пропускает запрос только при активной сессии.
func NewSessionMiddleware(auth services.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		if auth.CurrentUser() == nil {
			requestCtx := RequestContext(c)
			logger.Log(requestCtx).Debug(requestCtx, ErrorNotAuthenticated)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorNotAuthenticated,
			})
		}
		return c.Next()
	}
}
