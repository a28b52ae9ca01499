package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// OK sends a 200 response with the data wrapped in the success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// Created sends a 201 response with the data wrapped in the success envelope.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

// Paginated sends a 200 list response with totals in the meta block.
func Paginated(c echo.Context, data interface{}, total int64, limit, offset int) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
		Meta: map[string]interface{}{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}
