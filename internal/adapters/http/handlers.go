package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lingualog/core/internal/application/services"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("Login rejected", "email", req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return OK(c, response)
}

// TranslateHandler handles translation proxy requests
type TranslateHandler struct {
	translationService *services.TranslationService
	logger             *logger.Logger
}

// NewTranslateHandler creates a new translate handler
func NewTranslateHandler(translationService *services.TranslationService, logger *logger.Logger) *TranslateHandler {
	return &TranslateHandler{
		translationService: translationService,
		logger:             logger,
	}
}

// Translate handles a translation request
func (h *TranslateHandler) Translate(c echo.Context) error {
	var req ports.TranslateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.translationService.Translate(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return OK(c, response)
}

// Query parameter helpers shared by the list handlers.

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return v, nil
}

func queryIntPtr(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return &v, nil
}

func queryStringPtr(c echo.Context, name string) *string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	return &raw
}
