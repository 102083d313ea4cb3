package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"docscan/pkg/logger"
)

const (
	LogServerPanic      = "server panic"
	ErrorInternalServer = "internal server error"
)

// NewRecoveryMiddleware перехватывает панику обработчика и отвечает 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := RequestContext(c)
				logger.Log(requestCtx).Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())))

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": ErrorInternalServer,
				})
			}
		}()

		return c.Next()
	}
}
