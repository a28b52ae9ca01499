package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lingualog/core/internal/application/services"
	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// JourneyHandler handles journey progression and activity ledger requests
type JourneyHandler struct {
	journeyService  ports.JourneyService
	activityService *services.ActivityService
	logger          *logger.Logger
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(journeyService ports.JourneyService, activityService *services.ActivityService, logger *logger.Logger) *JourneyHandler {
	return &JourneyHandler{
		journeyService:  journeyService,
		activityService: activityService,
		logger:          logger,
	}
}

// Status handles getting the journey status
func (h *JourneyHandler) Status(c echo.Context) error {
	status, err := h.journeyService.Status(c.Request().Context())
	if err != nil {
		return err
	}

	return OK(c, status)
}

// UpdateActivity handles recording activity ledger deltas
func (h *JourneyHandler) UpdateActivity(c echo.Context) error {
	var req ports.UpdateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date := time.Now()
	if req.Date != nil {
		parsed, err := entities.ParseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date")
		}
		date = parsed
	}

	delta := entities.ActivityDelta{
		Minutes: req.MinutesPracticed,
		Entries: req.JournalEntries,
		Words:   req.VocabularyAdded,
	}

	day, err := h.activityService.RecordActivity(c.Request().Context(), date, delta)
	if err != nil {
		return err
	}

	return OK(c, day)
}

// CompleteDay handles a day-completion attempt. A rejected attempt (criteria
// not met, duplicate, finished journey) is still a 200 with accepted=false so
// client retries stay cheap.
func (h *JourneyHandler) CompleteDay(c echo.Context) error {
	var req ports.CompleteDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.journeyService.CompleteDay(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return OK(c, result)
}

// Landmarks handles getting the 30-slot journey map
func (h *JourneyHandler) Landmarks(c echo.Context) error {
	landmarks, err := h.journeyService.Landmarks(c.Request().Context())
	if err != nil {
		return err
	}

	return OK(c, landmarks)
}

// Achievements handles getting the achievement catalog with unlock state
func (h *JourneyHandler) Achievements(c echo.Context) error {
	achievements, err := h.journeyService.Achievements(c.Request().Context())
	if err != nil {
		return err
	}

	return OK(c, achievements)
}

// Streak handles getting the current and longest activity streak
func (h *JourneyHandler) Streak(c echo.Context) error {
	streak, err := h.activityService.GetStreak(c.Request().Context(), time.Now())
	if err != nil {
		return err
	}

	return OK(c, streak)
}

// Activity handles getting ledger rows. With from and to parameters it
// returns the rows in that inclusive range; with an optional date parameter
// it returns a single row, defaulting to today.
func (h *JourneyHandler) Activity(c echo.Context) error {
	if c.QueryParam("from") != "" || c.QueryParam("to") != "" {
		from, err := entities.ParseDate(c.QueryParam("from"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from parameter")
		}
		to, err := entities.ParseDate(c.QueryParam("to"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid to parameter")
		}

		days, err := h.activityService.GetActivityRange(c.Request().Context(), from, to)
		if err != nil {
			return err
		}

		return OK(c, days)
	}

	date := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := entities.ParseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date parameter")
		}
		date = parsed
	}

	day, err := h.activityService.GetActivity(c.Request().Context(), date)
	if err != nil {
		return err
	}

	return OK(c, day)
}
