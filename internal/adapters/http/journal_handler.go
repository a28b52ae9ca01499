package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lingualog/core/internal/application/services"
	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// JournalHandler handles bilingual journal entry requests
type JournalHandler struct {
	journalService *services.JournalService
	logger         *logger.Logger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalService *services.JournalService, logger *logger.Logger) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		logger:         logger,
	}
}

// CreateEntry handles creating a journal entry
func (h *JournalHandler) CreateEntry(c echo.Context) error {
	var req ports.CreateJournalEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.journalService.CreateEntry(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return Created(c, entry)
}

// GetEntry handles getting a journal entry by ID
func (h *JournalHandler) GetEntry(c echo.Context) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}

	entry, err := h.journalService.GetEntry(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return OK(c, entry)
}

// UpdateEntry handles updating a journal entry
func (h *JournalHandler) UpdateEntry(c echo.Context) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateJournalEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.journalService.UpdateEntry(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return OK(c, entry)
}

// DeleteEntry handles deleting a journal entry
func (h *JournalHandler) DeleteEntry(c echo.Context) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}

	if err := h.journalService.DeleteEntry(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListEntries handles listing journal entries with optional filters
func (h *JournalHandler) ListEntries(c echo.Context) error {
	filter := ports.JournalFilter{Search: queryStringPtr(c, "search")}

	if raw := c.QueryParam("from"); raw != "" {
		from, err := entities.ParseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from parameter")
		}
		filter.From = &from
	}

	if raw := c.QueryParam("to"); raw != "" {
		to, err := entities.ParseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid to parameter")
		}
		filter.To = &to
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit", 20); err != nil {
		return err
	}
	if filter.Offset, err = queryInt(c, "offset", 0); err != nil {
		return err
	}

	entries, total, err := h.journalService.ListEntries(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return Paginated(c, entries, total, filter.Limit, filter.Offset)
}

func entryID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid entry ID")
	}
	return id, nil
}
