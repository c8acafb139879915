package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/customization"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/service"
	"github.com/go-chi/chi/v5"
)

// CustomizationHandler drives the customization of a single menu item
// inside an ordering session.
type CustomizationHandler struct {
	sessions *service.SessionService
	log      *slog.Logger
}

// NewCustomizationHandler creates a new customization handler
func NewCustomizationHandler(sessions *service.SessionService, log *slog.Logger) *CustomizationHandler {
	return &CustomizationHandler{
		sessions: sessions,
		log:      log,
	}
}

// Start handles POST /api/sessions/{sessionId}/customization
func (h *CustomizationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartCustomizationRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}
	if req.MenuItemID <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return
	}

	state, err := h.sessions.StartCustomization(r.Context(), chi.URLParam(r, "sessionId"), req.MenuItemID)
	h.respond(w, http.StatusCreated, state, err)
}

// Get handles GET /api/sessions/{sessionId}/customization
func (h *CustomizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.CustomizationState(r.Context(), chi.URLParam(r, "sessionId"))
	h.respond(w, http.StatusOK, state, err)
}

// Cancel handles DELETE /api/sessions/{sessionId}/customization
func (h *CustomizationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.CancelCustomization(r.Context(), chi.URLParam(r, "sessionId")); err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleIngredient handles POST .../customization/ingredients/{ingredientId}
func (h *CustomizationHandler) ToggleIngredient(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.ToggleIngredient(r.Context(), chi.URLParam(r, "sessionId"), chi.URLParam(r, "ingredientId"))
	h.respond(w, http.StatusOK, state, err)
}

// SetPreparation handles PUT .../customization/preparation
func (h *CustomizationHandler) SetPreparation(w http.ResponseWriter, r *http.Request) {
	var req models.PreparationRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}
	state, err := h.sessions.SetPreparation(r.Context(), chi.URLParam(r, "sessionId"), req.PreparationID)
	h.respond(w, http.StatusOK, state, err)
}

// ToggleAddOn handles POST .../customization/addons/{addOnId}
func (h *CustomizationHandler) ToggleAddOn(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.ToggleAddOn(r.Context(), chi.URLParam(r, "sessionId"), chi.URLParam(r, "addOnId"))
	h.respond(w, http.StatusOK, state, err)
}

// ChangeQuantity handles POST .../customization/quantity
func (h *CustomizationHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req models.QuantityRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}
	if req.Delta == nil {
		WriteError(w, http.StatusBadRequest, "delta is required", h.log)
		return
	}
	state, err := h.sessions.ChangeCustomizationQuantity(r.Context(), chi.URLParam(r, "sessionId"), *req.Delta)
	h.respond(w, http.StatusOK, state, err)
}

// SetNote handles PUT .../customization/note
func (h *CustomizationHandler) SetNote(w http.ResponseWriter, r *http.Request) {
	var req models.NoteRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}
	state, err := h.sessions.SetCustomizationNote(r.Context(), chi.URLParam(r, "sessionId"), req.Note)
	h.respond(w, http.StatusOK, state, err)
}

// Confirm handles POST .../customization/confirm
// The customized line is appended to the order, which is returned.
func (h *CustomizationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if _, err := h.sessions.ConfirmCustomization(r.Context(), sessionID); err != nil {
		writeDomainError(w, err, h.log)
		return
	}

	summary, err := h.sessions.Summary(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusCreated, orderView(summary), h.log)
}

func (h *CustomizationHandler) respond(w http.ResponseWriter, status int, state customization.State, err error) {
	if err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, status, customizationView(state), h.log)
}
