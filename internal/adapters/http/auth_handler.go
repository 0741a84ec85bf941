package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/core/internal/infrastructure/logger"
	"github.com/taskdeck/core/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return RespondBadRequest(c, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return RespondBadRequest(c, "email and password are required")
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return RespondError(c, err)
	}

	return RespondSuccess(c, http.StatusOK, resp)
}
