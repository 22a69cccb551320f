package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: domain.ErrorKindValidation})
	case errors.Is(err, domain.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrContractImmutable), errors.Is(err, domain.ErrVehicleBusy):
		writeJSONError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Request failed", "error", err, "kind", domain.ErrorKind(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Kind: domain.ErrorKind(err)})
	}
}
