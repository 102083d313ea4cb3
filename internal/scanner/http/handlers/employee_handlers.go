package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/http/middleware"
	"docscan/internal/scanner/ports/services"
	"docscan/pkg/logger"
)

// EmployeeHandler обслуживает поиск сотрудников.
type EmployeeHandler struct {
	employees services.EmployeeService
}

// NewEmployeeHandler создает обработчик сотрудников.
func NewEmployeeHandler(employees services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// List обрабатывает GET /employees?search=&offset=&limit=.
func (h *EmployeeHandler) List(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	var query dto.EmployeeQuery
	if err := c.Bind().Query(&query); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return badRequest(c, ErrorInvalidRequest)
	}

	page, err := h.employees.FetchPage(requestCtx, query)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}
