package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/errors"
)

// HTTPError is the transport view of a failure: the status to send and the
// code/message pair serialized into {"error": ..., "code": ...}.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// codeStatus maps domain error codes onto the status and wire code clients see.
var codeStatus = map[string]struct {
	status int
	code   string
}{
	apperrors.CodeInvalidInput:  {status: http.StatusBadRequest, code: "invalid_request"},
	apperrors.CodeNoData:        {status: http.StatusServiceUnavailable, code: apperrors.CodeNoData},
	apperrors.CodeUpstreamError: {status: http.StatusBadGateway, code: apperrors.CodeUpstreamError},
}

// asHTTPError resolves any error recorded on the gin context. Domain errors
// keep their message; anything unrecognised becomes an opaque 500.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if mapped, ok := codeStatus[apperrors.CodeOf(err)]; ok {
		return &HTTPError{Status: mapped.status, Code: mapped.code, Message: err.Error(), Err: err}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// abortWithError records err for errorHandlingMiddleware and stops the chain.
func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
