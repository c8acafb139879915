package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderHandler handles ordering sessions and their orders
type OrderHandler struct {
	sessions *service.SessionService
	log      *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(sessions *service.SessionService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		sessions: sessions,
		log:      log,
	}
}

// SessionResponse is returned when a session is opened
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateSession handles POST /api/sessions
func (h *OrderHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.CreateSession(r.Context())
	WriteJSON(w, http.StatusCreated, SessionResponse{SessionID: id}, h.log)
}

// CloseSession handles DELETE /api/sessions/{sessionId}
// The order and any open customization are discarded.
func (h *OrderHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.CloseSession(r.Context(), chi.URLParam(r, "sessionId")); err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetOrder handles GET /api/sessions/{sessionId}/order
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	h.writeOrder(w, r, http.StatusOK)
}

// AddItem handles POST /api/sessions/{sessionId}/order/items
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}
	if req.MenuItemID <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return
	}

	if _, err := h.sessions.AddItem(r.Context(), chi.URLParam(r, "sessionId"), req.MenuItemID); err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	h.writeOrder(w, r, http.StatusCreated)
}

// UpdateLine handles PATCH /api/sessions/{sessionId}/order/lines/{lineId}
// The delta is applied to the line quantity, which never drops below one.
func (h *OrderHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req models.QuantityRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}
	if req.Delta == nil {
		WriteError(w, http.StatusBadRequest, "delta is required", h.log)
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	if _, err := h.sessions.UpdateQuantity(r.Context(), sessionID, chi.URLParam(r, "lineId"), *req.Delta); err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	h.writeOrder(w, r, http.StatusOK)
}

// RemoveLine handles DELETE /api/sessions/{sessionId}/order/lines/{lineId}
func (h *OrderHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if err := h.sessions.RemoveLine(r.Context(), sessionID, chi.URLParam(r, "lineId")); err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	h.writeOrder(w, r, http.StatusOK)
}

// SubmitOrder handles POST /api/sessions/{sessionId}/order/submit
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrderRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}

	ticket, err := h.sessions.Submit(r.Context(), chi.URLParam(r, "sessionId"), req.Table)
	if err != nil {
		writeDomainError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, ticketView(ticket), h.log)
	h.log.Info("order submitted", "ticket_id", ticket.ID, "items_count", len(ticket.Items))
}

func (h *OrderHandler) writeOrder(w http.ResponseWriter, r *http.Request, status int) {
	summary, err := h.sessions.Summary(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, status, orderView(summary), h.log)
}
