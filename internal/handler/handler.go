package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"coupon-manager/internal/model"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeError writes an error body carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message, field string, logger zerolog.Logger) {
	reqID := chimw.GetReqID(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("request_id", reqID).
		Str("code", code).
		Int("status", status).
		Msg(message)

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		Field:         field,
		CorrelationID: reqID,
	})
}

// statusFor maps a domain error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeDuplicateCode, model.ErrCodeInvalidQuery, model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeUsageLimitExceeded, model.ErrCodeEmailTaken:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates a service error into a response. Anything that
// is not a domain error becomes an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Str("request_id", chimw.GetReqID(r.Context())).Msg("unexpected error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error", "", logger)
		return
	}

	if domainErr.Code == model.ErrCodeStoreUnavailable {
		logger.Error().Err(err).Str("request_id", chimw.GetReqID(r.Context())).Msg("store unavailable")
	}

	writeError(w, r, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, domainErr.Field, logger)
}

// decodeJSON reads the request body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "Invalid request body", "", logger)
		return false
	}
	return true
}
