package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/http/middleware"
	"docscan/internal/scanner/ports/services"
	"docscan/internal/scanner/session"
	"docscan/pkg/logger"
)

const (
	LogHandlerLogin  = "auth handler: login"
	LogHandlerLogout = "auth handler: logout"
	LogHandlerMe     = "auth handler: me"
)

// AuthHandler обслуживает вход, выход и профиль.
type AuthHandler struct {
	auth   services.AuthService
	client *session.Client
}

// NewAuthHandler создает обработчик авторизации. client может быть nil.
func NewAuthHandler(auth services.AuthService, client *session.Client) *AuthHandler {
	return &AuthHandler{auth: auth, client: client}
}

// Login обрабатывает POST /auth/login.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Warn(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return badRequest(c, ErrorInvalidRequest)
	}

	user, err := h.auth.Login(requestCtx, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(h.sessionResponse(user))
}

// Logout обрабатывает POST /auth/logout.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogout)

	if err := h.auth.Logout(requestCtx); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me обрабатывает GET /auth/me. С ?reload=true профиль перечитывается с бэкенда.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerMe)

	user := h.auth.CurrentUser()
	if user == nil {
		return c.Status(fiber.StatusOK).JSON(dto.SessionResponse{Authenticated: false})
	}

	if c.Query("reload") == "true" {
		reloaded, err := h.auth.ReloadUser(requestCtx)
		if err != nil {
			return respondError(c, err)
		}
		user = reloaded
	}
	return c.Status(fiber.StatusOK).JSON(h.sessionResponse(user))
}

func (h *AuthHandler) sessionResponse(user any) dto.SessionResponse {
	resp := dto.SessionResponse{Authenticated: true, User: user}
	if h.client != nil {
		if pair := h.client.Session(); pair != nil {
			resp.AccessExp = pair.AccessExp
		}
	}
	return resp
}
