package errors

import (
	"errors"
	"net/http"
)

// Domain error kinds. Callers wrap them with fmt.Errorf("%w: ...") and match
// with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrQuotaExceeded   = errors.New("daily post limit exceeded")
	// ErrInvalidCursor is a client error: the pagination token was not one we issued.
	ErrInvalidCursor = errors.New("invalid cursor")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Classify maps err to an HTTP status and a stable machine-readable code.
func Classify(err error) (status int, code string) {
	var withStatus *ErrorWithStatusCode
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, ErrInvalidCursor):
		return http.StatusBadRequest, "INVALID_CURSOR"
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusTooManyRequests, "QUOTA_EXCEEDED"
	case errors.As(err, &withStatus):
		switch withStatus.StatusCode {
		case http.StatusTooManyRequests:
			return withStatus.StatusCode, "RATE_LIMITED"
		case http.StatusBadRequest:
			return withStatus.StatusCode, "BAD_REQUEST"
		case http.StatusRequestEntityTooLarge:
			return withStatus.StatusCode, "PAYLOAD_TOO_LARGE"
		}
		return withStatus.StatusCode, http.StatusText(withStatus.StatusCode)
	}
	return http.StatusInternalServerError, "INTERNAL"
}
