// Package middleware содержит промежуточное ПО локального HTTP API.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const localsRequestContext = "requestContext"

// RequestContext возвращает контекст запроса с идентификатором, который положил логгер.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}
