package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/dto"
	"github.com/lftbrito/bip-teste-integrado/internal/domain"
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

// mapDomainError maps domain errors to HTTP status codes. Business rule
// rejections and concurrency outcomes are conflicts; malformed requests
// are bad requests.
func mapDomainError(err error) int {
	var (
		notFound     *domain.NotFoundError
		inactive     *domain.InactiveError
		insufficient *domain.InsufficientBalanceError
		nameTaken    *domain.NameTakenError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSameBenefit),
		errors.As(err, &inactive),
		errors.As(err, &insufficient),
		errors.As(err, &nameTaken),
		errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrConcurrencyExhausted),
		errors.Is(err, domain.ErrLockTimeout):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
