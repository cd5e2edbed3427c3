package handler

import (
	"fmt"
	"net/http"
	"strconv"

	internal_errors "github.com/rivals-dev/rivals/shared/errors"
)

// maxPageSize caps client-supplied limits.
const maxPageSize = 100

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("invalid %s: must be an integer", paramName))
	}
	return val, nil
}

// parseLimit reads ?limit. Absent or non-positive values mean the store
// default (0); larger values are capped at maxPageSize.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := parseIntParam(raw, "limit")
	if err != nil {
		return 0, err
	}
	if limit < 1 {
		return 0, nil
	}
	return int(min(limit, maxPageSize)), nil
}

// parseSince reads ?since as epoch milliseconds; absent, zero or negative
// means no lower bound.
func parseSince(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("since")
	if raw == "" {
		return 0, nil
	}
	return parseIntParam(raw, "since")
}

func badRequest(message string) error {
	return &internal_errors.ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}
