package utils

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rivals-dev/rivals/shared/api"
	"github.com/rivals-dev/rivals/shared/errors"
	"github.com/rivals-dev/rivals/shared/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode writes err as a JSON {code, message} body. Internal
// errors are logged and their text is not sent to the client.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	status, code := errors.Classify(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed", "error", err)
		message = "Internal server error"
	}
	WriteJSON(w, status, api.ErrorResponse{Code: code, Message: message})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	defer r.Close()
	if err := json.NewDecoder(r).Decode(body); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return &errors.ErrorWithStatusCode{Message: "Payload too large", StatusCode: http.StatusRequestEntityTooLarge}
		}
		logger.Log.Debug("request body is not valid json", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
