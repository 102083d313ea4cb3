// Package http содержит локальный HTTP API сканера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"docscan/internal/scanner/http/handlers"
	"docscan/internal/scanner/http/middleware"
	"docscan/internal/scanner/ports/services"
	"docscan/internal/scanner/session"
)

const ErrorRouteNotFound = "route not found"

// Services - зависимости маршрутов.
type Services struct {
	Auth      services.AuthService
	Employees services.EmployeeService
	WaitDocs  services.WaitDocumentService
	Library   services.LibraryService
	Session   *session.Client
	// UploadDir - каталог для временных файлов загрузок, пусто означает системный.
	UploadDir string
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, s Services) {
	authHandler := handlers.NewAuthHandler(s.Auth, s.Session)
	employeeHandler := handlers.NewEmployeeHandler(s.Employees)
	waitDocHandler := handlers.NewWaitDocumentHandler(s.WaitDocs, s.UploadDir)
	documentHandler := handlers.NewDocumentHandler(s.Library)

	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiV1 := app.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", authHandler.Me)

	apiV1.Get("/doc-types", handlers.DocTypes)

	documents := apiV1.Group("/documents")
	documents.Get("/", documentHandler.List)
	documents.Post("/", documentHandler.Create)
	documents.Delete("/:id", documentHandler.Delete)

	// Маршруты бэкенда требуют активной сессии.
	requireSession := middleware.NewSessionMiddleware(s.Auth)

	employees := apiV1.Group("/employees")
	employees.Use(requireSession)
	employees.Get("/", employeeHandler.List)

	waitDocs := apiV1.Group("/waitdocs")
	waitDocs.Use(requireSession)
	waitDocs.Get("/", waitDocHandler.List)
	waitDocs.Post("/", waitDocHandler.Create)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrorRouteNotFound,
		})
	})
}
