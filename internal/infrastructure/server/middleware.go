package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	httpHandlers "github.com/lingualog/core/internal/adapters/http"
	"github.com/lingualog/core/internal/application/services"
	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
)

// authMiddleware validates JWT tokens
func (s *Server) authMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				s.logger.Warnw("Invalid token", "error", err, "ip", c.RealIP())
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("user", claims.UserID.String())
			c.Set("user_email", claims.Email)

			return next(c)
		}
	}
}

// statusForDomainError maps domain sentinel errors to HTTP status codes.
func statusForDomainError(err error) (int, bool) {
	switch {
	case errors.Is(err, entities.ErrValidation),
		errors.Is(err, entities.ErrNegativeDelta):
		return http.StatusBadRequest, true
	case errors.Is(err, entities.ErrUnauthorized):
		return http.StatusUnauthorized, true
	case errors.Is(err, entities.ErrNotFound),
		errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrEntryNotFound),
		errors.Is(err, entities.ErrItemNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, entities.ErrTaskActive),
		errors.Is(err, entities.ErrTaskCompleted),
		errors.Is(err, entities.ErrInvalidTaskState),
		errors.Is(err, entities.ErrTargetNotReached),
		errors.Is(err, entities.ErrDayAlreadyCompleted),
		errors.Is(err, entities.ErrJourneyFinished):
		return http.StatusConflict, true
	case errors.Is(err, entities.ErrTranslationFailed):
		return http.StatusBadGateway, true
	default:
		return 0, false
	}
}

// customErrorHandler renders every error in the uniform response envelope.
func customErrorHandler(appLogger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := "Internal server error"

		var he *echo.HTTPError
		var ve validator.ValidationErrors

		if status, ok := statusForDomainError(err); ok {
			code = status
			message = err.Error()
		} else if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		} else if errors.As(err, &ve) {
			code = http.StatusBadRequest
			message = ve.Error()
		}

		if code == http.StatusInternalServerError {
			appLogger.WithError(err).Errorw("Internal server error", "path", c.Request().URL.Path)
		}

		if c.Response().Committed {
			return
		}

		var sendErr error
		if c.Request().Method == echo.HEAD {
			sendErr = c.NoContent(code)
		} else {
			sendErr = c.JSON(code, httpHandlers.ErrorResponse{
				Success: false,
				Error:   http.StatusText(code),
				Message: message,
			})
		}
		if sendErr != nil {
			appLogger.Errorw("Error sending response", "error", sendErr)
		}
	}
}
