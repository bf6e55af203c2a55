package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/llm-maps/api/internal/apperr"
	"github.com/octobees/llm-maps/api/internal/dto"
)

// Success sends a successful response. Payloads carry their own success flag.
func Success(c echo.Context, status int, payload any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, errorText, message string) error {
	return ErrorBody(c, status, dto.ErrorResponse{Error: errorText, Message: message})
}

// ErrorBody sends body as a failure, forcing the success flag off.
func ErrorBody(c echo.Context, status int, body dto.ErrorResponse) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	body.Success = false
	return c.JSON(status, body)
}

// AppError sends err with the status of its kind and its message as the error text.
func AppError(c echo.Context, err error) error {
	return Error(c, apperr.HTTPStatus(err), err.Error(), "")
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
