package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"docscan/pkg/logger"
)

const (
	LogRequestStarted   = "request started"
	LogRequestCompleted = "request completed"
	LogRequestFailed    = "request failed"
)

// NewLoggerMiddleware логирует запросы и проставляет X-Request-ID.
// Идентификатор берется из заголовка запроса или генерируется.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		requestCtx := logger.NewRequestIDContext(c.Context(), c.Get(HeaderRequestID))
		requestID, _ := logger.GetRequestID(requestCtx)
		c.Locals(localsRequestContext, requestCtx)
		c.Set(HeaderRequestID, requestID)

		log := logger.Log(requestCtx).With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)
		log.Debug(requestCtx, LogRequestStarted)

		err := c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Error(requestCtx, LogRequestFailed, append(fields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, LogRequestCompleted, fields...)
		return nil
	}
}
