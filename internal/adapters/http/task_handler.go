package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// TaskHandler handles daily task timer requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListToday handles getting the task catalog with today's timer state
func (h *TaskHandler) ListToday(c echo.Context) error {
	tasks, err := h.taskService.ListToday(c.Request().Context())
	if err != nil {
		return err
	}

	return OK(c, tasks)
}

// Start handles starting a task timer
func (h *TaskHandler) Start(c echo.Context) error {
	taskID, err := h.taskID(c)
	if err != nil {
		return err
	}

	state, err := h.taskService.Start(c.Request().Context(), taskID)
	if err != nil {
		return err
	}

	return OK(c, state)
}

// Pause handles pausing a running task timer
func (h *TaskHandler) Pause(c echo.Context) error {
	taskID, err := h.taskID(c)
	if err != nil {
		return err
	}

	state, err := h.taskService.Pause(c.Request().Context(), taskID)
	if err != nil {
		return err
	}

	return OK(c, state)
}

// Resume handles resuming a paused task timer
func (h *TaskHandler) Resume(c echo.Context) error {
	taskID, err := h.taskID(c)
	if err != nil {
		return err
	}

	state, err := h.taskService.Resume(c.Request().Context(), taskID)
	if err != nil {
		return err
	}

	return OK(c, state)
}

// Complete handles completing a task once its target time is reached
func (h *TaskHandler) Complete(c echo.Context) error {
	taskID, err := h.taskID(c)
	if err != nil {
		return err
	}

	state, err := h.taskService.Complete(c.Request().Context(), taskID)
	if err != nil {
		return err
	}

	return OK(c, state)
}

func (h *TaskHandler) taskID(c echo.Context) (string, error) {
	taskID := c.Param("id")
	if _, ok := entities.TaskByID(taskID); !ok {
		return "", echo.NewHTTPError(http.StatusNotFound, "Unknown task")
	}
	return taskID, nil
}
