package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/schoolpay/feeledger/internal/adapter/http/dto"
	"github.com/schoolpay/feeledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrStudentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrClassNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFeeEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrJournalEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEnrollment):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDuplicateClass):
		return http.StatusConflict
	case errors.Is(err, domain.ErrWriteConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidPayer):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidGrade):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
