package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("%w: thread 1", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"invalid argument", fmt.Errorf("%w: empty title", ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"invalid cursor", fmt.Errorf("%w: malformed key", ErrInvalidCursor), http.StatusBadRequest, "INVALID_CURSOR"},
		{"quota", ErrQuotaExceeded, http.StatusTooManyRequests, "QUOTA_EXCEEDED"},
		{"bad request", &ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}, http.StatusBadRequest, "BAD_REQUEST"},
		{"rate limited", &ErrorWithStatusCode{Message: "slow down", StatusCode: http.StatusTooManyRequests}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"payload too large", &ErrorWithStatusCode{Message: "Payload too large", StatusCode: http.StatusRequestEntityTooLarge}, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
