package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/core/internal/application/services"
)

// Envelope is the uniform response body of the JSON API.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ErrorBody carries the external error contract.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondSuccess writes a success envelope with the given status.
func RespondSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// RespondError writes an error envelope. Service-layer ClientErrors are
// rendered verbatim; anything else becomes a generic internal error.
func RespondError(c echo.Context, err error) error {
	var ce *services.ClientError
	if !errors.As(err, &ce) {
		ce = services.ErrInternal
	}

	return c.JSON(ce.HTTPStatus, Envelope{
		Success:   false,
		Error:     &ErrorBody{Code: ce.Code, Message: ce.Message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// RespondBadRequest writes a 400 envelope for malformed requests that
// never reach the service layer.
func RespondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Envelope{
		Success:   false,
		Error:     &ErrorBody{Code: "InvalidRequest", Message: message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
