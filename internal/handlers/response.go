package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/customization"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/kitchen"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/service"
)

const timeLayout = time.RFC3339

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// writeDomainError maps an error from the service layer to a status code.
// Anything unrecognised is logged and reported as a 500.
func writeDomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		WriteError(w, status, "Internal server error", logger)
		return
	}
	logger.Info("request rejected", "status", status, "error", err)
	WriteError(w, status, err.Error(), logger)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, kitchen.ErrTicketNotFound),
		errors.Is(err, kitchen.ErrItemNotFound),
		errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidReference),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, kitchen.ErrInvalidStatus),
		errors.Is(err, kitchen.ErrEmptyTicket):
		return http.StatusBadRequest
	case errors.Is(err, customization.ErrCustomizationInProgress),
		errors.Is(err, customization.ErrNoActiveCustomization),
		errors.Is(err, service.ErrItemUnavailable),
		errors.Is(err, kitchen.ErrTicketClosed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// decodeJSON reads the request body into v and answers 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, logger *slog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid input", logger)
		return false
	}
	return true
}

// parseItemID validates a numeric menu item id from the URL
func parseItemID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
