package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/llm-maps/api/internal/apperr"
	"github.com/octobees/llm-maps/api/internal/dto"
	"github.com/octobees/llm-maps/api/internal/logger"
)

// NewHTTPErrorHandler renders errors that escape handlers and middleware. Unmatched
// routes become 404 "Endpoint not found"; anything unexpected becomes a 500.
func NewHTTPErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		req := c.Request()
		status, body := errorResponse(err, req)
		if status >= http.StatusInternalServerError {
			log.WithContext(req.Context()).HTTPError(req.Method, req.URL.Path, status, err)
		}

		var writeErr error
		if req.Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Error("failed to write error response", "error", writeErr)
		}
	}
}

func errorResponse(err error, req *http.Request) (int, dto.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return http.StatusNotFound, dto.ErrorResponse{
				Error:  "Endpoint not found",
				Path:   req.URL.RequestURI(),
				Method: req.Method,
			}
		case http.StatusInternalServerError:
			return he.Code, dto.ErrorResponse{Error: "Internal server error", Message: internalMessage(he)}
		default:
			return he.Code, dto.ErrorResponse{Error: http.StatusText(he.Code), Message: fmt.Sprint(he.Message)}
		}
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.HTTPStatus() < http.StatusInternalServerError {
		return appErr.HTTPStatus(), dto.ErrorResponse{Error: appErr.Message}
	}

	return http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error", Message: err.Error()}
}

func internalMessage(he *echo.HTTPError) string {
	if he.Internal != nil {
		return he.Internal.Error()
	}
	return fmt.Sprint(he.Message)
}
