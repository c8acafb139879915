package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/kitchen"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/go-chi/chi/v5"
)

// ticketBoard is the part of the kitchen board the handlers use
type ticketBoard interface {
	Get(id string) (kitchen.Ticket, error)
	List(status kitchen.TicketStatus) []kitchen.Ticket
	UpdateItemStatus(ctx context.Context, ticketID, lineID string, status kitchen.ItemStatus) (kitchen.Ticket, error)
	Cancel(ctx context.Context, ticketID string) (kitchen.Ticket, error)
	Report() kitchen.Report
}

// KitchenHandler handles the kitchen display and admin report
type KitchenHandler struct {
	board ticketBoard
	log   *slog.Logger
}

// NewKitchenHandler creates a new KitchenHandler
func NewKitchenHandler(board ticketBoard, log *slog.Logger) *KitchenHandler {
	return &KitchenHandler{
		board: board,
		log:   log,
	}
}

// ListTickets handles GET /api/kitchen/tickets
func (h *KitchenHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	status := kitchen.TicketStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		WriteError(w, http.StatusBadRequest, "Invalid status", h.log)
		return
	}

	tickets := h.board.List(status)
	views := make([]TicketView, len(tickets))
	for i, t := range tickets {
		views[i] = ticketView(t)
	}
	WriteJSON(w, http.StatusOK, views, h.log)
}

// GetTicket handles GET /api/kitchen/tickets/{ticketId}
func (h *KitchenHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.board.Get(chi.URLParam(r, "ticketId"))
	if err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, ticketView(ticket), h.log)
}

// UpdateItemStatus handles PUT /api/kitchen/tickets/{ticketId}/items/{lineId}
func (h *KitchenHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	var req models.ItemStatusRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}

	ticket, err := h.board.UpdateItemStatus(r.Context(),
		chi.URLParam(r, "ticketId"), chi.URLParam(r, "lineId"), kitchen.ItemStatus(req.Status))
	if err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, ticketView(ticket), h.log)
}

// CancelTicket handles POST /api/kitchen/tickets/{ticketId}/cancel
func (h *KitchenHandler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.board.Cancel(r.Context(), chi.URLParam(r, "ticketId"))
	if err != nil {
		writeDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, ticketView(ticket), h.log)
}

// Report handles GET /api/admin/report
func (h *KitchenHandler) Report(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, reportView(h.board.Report()), h.log)
}
