package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/satelitear/backend/errs"
)

type Responder struct {
	logger zerolog.Logger
	// verboseErrors includes diagnostic details and causes in error bodies;
	// disabled in production.
	verboseErrors bool
}

func NewResponder(logger zerolog.Logger, verboseErrors bool) Responder {
	return Responder{logger: logger, verboseErrors: verboseErrors}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		body := map[string]interface{}{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
			"status":  "error",
		}
		if r.verboseErrors {
			body["details"] = err.Error()
		}
		r.WriteJSON(w, body)
		return
	}

	// Build response based on error details
	response := map[string]interface{}{
		"error":  apiErr.Error(),
		"status": "error",
	}

	// Field information is part of the client contract for validation errors
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	// Diagnostic detail only outside production
	if r.verboseErrors {
		if apiErr.Details != "" {
			response["details"] = apiErr.Details
		}
		if apiErr.Cause != nil {
			response["cause"] = apiErr.GetFullError()
		}
	}

	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// WriteValidationError writes a standardized validation error response
func (r Responder) WriteValidationError(w http.ResponseWriter, field string, message string) {
	w.WriteHeader(http.StatusBadRequest)
	r.WriteJSON(w, map[string]interface{}{
		"error":   "Validation error",
		"message": message,
		"field":   field,
		"status":  "validation_error",
	})
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
