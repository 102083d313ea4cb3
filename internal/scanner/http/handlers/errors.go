// Package handlers содержит HTTP обработчики локального API сканера.
package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/http/middleware"
	"docscan/internal/scanner/ports/repositories"
	"docscan/internal/scanner/resilience"
	"docscan/internal/scanner/session"
	"docscan/pkg/logger"
)

const (
	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// statusOf сопоставляет ошибку сценария со статусом ответа.
func statusOf(err error) int {
	var apiErr *session.APIError
	switch {
	case errors.Is(err, entities.ErrEmptyCredentials),
		errors.Is(err, entities.ErrUnknownDocType),
		errors.Is(err, entities.ErrNoImages),
		errors.Is(err, entities.ErrEmptyFilePath):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrDocumentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entities.ErrUnknownUser), session.IsSessionError(err):
		return fiber.StatusUnauthorized
	case errors.As(err, &apiErr):
		if apiErr.Unauthorized() {
			return fiber.StatusUnauthorized
		}
		return fiber.StatusBadGateway
	case errors.Is(err, resilience.ErrCircuitOpen):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, entities.ErrInvalidLogin):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError логирует ошибку и отвечает JSON {"error": ...}.
func respondError(c fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(c)
	status := statusOf(err)

	log := logger.Log(requestCtx).With(zap.Int("status", status))
	if status >= fiber.StatusInternalServerError {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	} else {
		log.Warn(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
