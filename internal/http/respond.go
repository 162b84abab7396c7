package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	r "github.com/fjod/go_pos/internal/repository"
	"github.com/fjod/go_pos/internal/service"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// handleServiceError maps the error taxonomy onto HTTP statuses: validation
// 400, stock conflict and duplicate txn 409, missing resource 404, anything
// else 500.
func handleServiceError(w http.ResponseWriter, err error) {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		respondError(w, http.StatusBadRequest, validation.Reason)
		return
	}

	var insufficient *r.InsufficientStockError
	if errors.As(err, &insufficient) {
		respondError(w, http.StatusConflict, insufficient.Error())
		return
	}

	switch {
	case errors.Is(err, r.ErrDuplicateTransaction):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, r.ErrTransactionNotFound):
		respondError(w, http.StatusNotFound, "Transaction not found")
	default:
		respondError(w, http.StatusInternalServerError, "Server error: "+err.Error())
	}
}
