package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/brandforge/printshop/internal/catalog"
	"github.com/brandforge/printshop/internal/order"
	"github.com/brandforge/printshop/internal/user"
)

type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

// respondWithError sends a JSON error payload.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Interface("payload", payload).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func formatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag())
	}
	return details
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidStatusTransition):
		return http.StatusConflict
	case errors.Is(err, order.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
