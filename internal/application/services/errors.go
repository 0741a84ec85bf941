package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/logger"
)

// ClientError is the external error contract produced by the service
// layer. Handlers render it verbatim; no other layer reformats errors.
type ClientError struct {
	HTTPStatus int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *ClientError) Error() string {
	return e.Message
}

// ErrInternal is returned for any unexpected failure. The cause is
// logged in full but never leaks to the caller.
var ErrInternal = &ClientError{
	HTTPStatus: http.StatusInternalServerError,
	Code:       "InternalError",
	Message:    "an unexpected error occurred",
}

// translate maps a domain error to the external contract: existence
// failures become 404, validation failures 400, anything else a generic
// internal error logged with its full cause.
func translate(log *logger.Logger, op string, err error) error {
	var de *entities.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		if strings.HasSuffix(de.Code, "DoesNotExist") {
			status = http.StatusNotFound
		}
		return &ClientError{HTTPStatus: status, Code: de.Code, Message: de.Message}
	}

	log.Errorw("operation failed", "op", op, "error", err)
	return ErrInternal
}
