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

// CollectionHandler handles vocabulary, phrase and category requests
type CollectionHandler struct {
	collectionService *services.CollectionService
	logger            *logger.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionService *services.CollectionService, logger *logger.Logger) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		logger:            logger,
	}
}

// AddVocabulary handles adding a vocabulary item
func (h *CollectionHandler) AddVocabulary(c echo.Context) error {
	var req ports.CreateVocabularyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.collectionService.AddVocabulary(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return Created(c, item)
}

// UpdateVocabulary handles updating a vocabulary item
func (h *CollectionHandler) UpdateVocabulary(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateVocabularyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.collectionService.UpdateVocabulary(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return OK(c, item)
}

// DeleteVocabulary handles deleting a vocabulary item
func (h *CollectionHandler) DeleteVocabulary(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}

	if err := h.collectionService.DeleteVocabulary(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListVocabulary handles listing vocabulary items with optional filters
func (h *CollectionHandler) ListVocabulary(c echo.Context) error {
	filter, err := collectionFilter(c)
	if err != nil {
		return err
	}

	if raw := c.QueryParam("learned"); raw != "" {
		learned := raw == "true"
		filter.Learned = &learned
	}

	items, err := h.collectionService.ListVocabulary(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return OK(c, items)
}

// AddPhrase handles adding a phrase
func (h *CollectionHandler) AddPhrase(c echo.Context) error {
	var req ports.CreatePhraseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	phrase, err := h.collectionService.AddPhrase(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return Created(c, phrase)
}

// DeletePhrase handles deleting a phrase
func (h *CollectionHandler) DeletePhrase(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}

	if err := h.collectionService.DeletePhrase(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListPhrases handles listing phrases with optional filters
func (h *CollectionHandler) ListPhrases(c echo.Context) error {
	filter, err := collectionFilter(c)
	if err != nil {
		return err
	}

	phrases, err := h.collectionService.ListPhrases(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return OK(c, phrases)
}

// CreateCategory handles creating a category
func (h *CollectionHandler) CreateCategory(c echo.Context) error {
	var req ports.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.collectionService.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return Created(c, category)
}

// ListCategories handles listing categories, optionally by kind
func (h *CollectionHandler) ListCategories(c echo.Context) error {
	var kind *entities.CategoryKind
	if raw := c.QueryParam("kind"); raw != "" {
		k := entities.CategoryKind(raw)
		if !k.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid kind parameter")
		}
		kind = &k
	}

	categories, err := h.collectionService.ListCategories(c.Request().Context(), kind)
	if err != nil {
		return err
	}

	return OK(c, categories)
}

func collectionFilter(c echo.Context) (ports.CollectionFilter, error) {
	filter := ports.CollectionFilter{Search: queryStringPtr(c, "search")}

	var err error
	if filter.CategoryID, err = queryIntPtr(c, "category_id"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(c, "limit", 50); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryInt(c, "offset", 0); err != nil {
		return filter, err
	}

	return filter, nil
}

func itemID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}
	return id, nil
}
