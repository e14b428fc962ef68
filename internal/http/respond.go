package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
	applog "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/log"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/services"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors to status codes. Validation failures are the
// client's fault; everything else is a 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case isValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNoExportTarget):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		applog.FromContext(ctx).ErrorContext(ctx, "Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDate,
		core.ErrInvalidRange,
		core.ErrInvalidAmount,
		core.ErrInvalidType,
		core.ErrInvalidStatus,
		core.ErrInvalidSource,
		core.ErrInvalidRepetition,
		core.ErrEmptyDescription,
		core.ErrEmptyTitle,
		core.ErrEmptyName,
		core.ErrEmptySymbol,
		core.ErrMissingEntity,
		core.ErrInvalidGuestCount,
		errBadRequest,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
