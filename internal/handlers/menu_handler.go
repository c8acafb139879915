package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/service"
	"github.com/go-chi/chi/v5"
)

// MenuHandler handles menu browsing requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListMenu handles GET /api/menu
// An optional ?category= narrows the list to one category.
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	views := make([]MenuItemView, len(items))
	for i, item := range items {
		views[i] = menuItemView(item)
	}
	WriteJSON(w, http.StatusOK, views, h.logger)
}

// GetMenuItem handles GET /api/menu/{itemId}
// Returns the item together with its ingredients, preparations and add-ons:
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Menu item not found
func (h *MenuHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "itemId")
	id, ok := parseItemID(raw)
	if !ok {
		h.logger.Warn("invalid menu item ID format", "itemId", raw)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	details, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, menuItemDetailsView(details), h.logger)
}
