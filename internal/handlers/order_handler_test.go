package handlers

import (
	"net/http"
	"testing"
)

func addItem(t *testing.T, h http.Handler, sessionID string, itemID int64) OrderView {
	t.Helper()

	var order OrderView
	w := do(t, h, http.MethodPost, "/api/sessions/"+sessionID+"/order/items",
		map[string]int64{"menuItemId": itemID}, &order)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 adding item %d, got %d", itemID, w.Code)
	}
	return order
}

func TestCreateOrder_PlainItems(t *testing.T) {
	h := newTestServer(t)
	sessionID := openSession(t, h)

	addItem(t, h, sessionID, 1)
	addItem(t, h, sessionID, 1)
	addItem(t, h, sessionID, 5)
	order := addItem(t, h, sessionID, 5)

	if len(order.Lines) != 2 {
		t.Fatalf("expected plain lines to merge into 2, got %d", len(order.Lines))
	}
	if order.ItemCount != 4 {
		t.Errorf("expected item count 4, got %d", order.ItemCount)
	}
	if order.Subtotal != "300.00" || order.Tax != "48.00" || order.Total != "348.00" {
		t.Errorf("expected 300.00/48.00/348.00, got %s/%s/%s", order.Subtotal, order.Tax, order.Total)
	}
	if order.Lines[0].UnitPrice != "120.00" || order.Lines[0].LineTotal != "240.00" {
		t.Errorf("unexpected burger line: %+v", order.Lines[0])
	}

	var fetched OrderView
	w := do(t, h, http.MethodGet, "/api/sessions/"+sessionID+"/order", nil, &fetched)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if fetched.Total != "348.00" || fetched.SessionID != sessionID {
		t.Errorf("unexpected order: %+v", fetched)
	}
}

func TestUpdateLine(t *testing.T) {
	h := newTestServer(t)
	sessionID := openSession(t, h)
	order := addItem(t, h, sessionID, 4)
	linePath := "/api/sessions/" + sessionID + "/order/lines/" + order.Lines[0].ID

	tests := []struct {
		name         string
		delta        int
		wantQuantity int
		wantTotal    string
	}{
		{name: "increase", delta: 2, wantQuantity: 3, wantTotal: "150.00"},
		{name: "decrease", delta: -1, wantQuantity: 2, wantTotal: "100.00"},
		{name: "clamped at one", delta: -10, wantQuantity: 1, wantTotal: "50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updated OrderView
			w := do(t, h, http.MethodPatch, linePath, map[string]int{"delta": tt.delta}, &updated)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if updated.Lines[0].Quantity != tt.wantQuantity {
				t.Errorf("expected quantity %d, got %d", tt.wantQuantity, updated.Lines[0].Quantity)
			}
			if updated.Lines[0].LineTotal != tt.wantTotal {
				t.Errorf("expected line total %s, got %s", tt.wantTotal, updated.Lines[0].LineTotal)
			}
		})
	}
}

func TestRemoveLine(t *testing.T) {
	h := newTestServer(t)
	sessionID := openSession(t, h)
	addItem(t, h, sessionID, 1)
	order := addItem(t, h, sessionID, 6)

	var updated OrderView
	w := do(t, h, http.MethodDelete, "/api/sessions/"+sessionID+"/order/lines/"+order.Lines[0].ID, nil, &updated)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if len(updated.Lines) != 1 || updated.Lines[0].MenuItemID != 6 {
		t.Errorf("expected only the cake line to remain, got %+v", updated.Lines)
	}
	if updated.Subtotal != "80.00" {
		t.Errorf("expected subtotal 80.00, got %s", updated.Subtotal)
	}
}

func TestOrderErrors(t *testing.T) {
	h := newTestServer(t)
	sessionID := openSession(t, h)
	base := "/api/sessions/" + sessionID

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
	}{
		{name: "unknown session", method: http.MethodGet, path: "/api/sessions/nope/order", wantStatus: http.StatusNotFound},
		{name: "malformed body", method: http.MethodPost, path: base + "/order/items", body: "{not json", wantStatus: http.StatusBadRequest},
		{name: "missing item id", method: http.MethodPost, path: base + "/order/items", body: map[string]string{}, wantStatus: http.StatusBadRequest},
		{name: "unknown item", method: http.MethodPost, path: base + "/order/items", body: map[string]int64{"menuItemId": 999}, wantStatus: http.StatusNotFound},
		{name: "unknown line", method: http.MethodPatch, path: base + "/order/lines/nope", body: map[string]int{"delta": 1}, wantStatus: http.StatusNotFound},
		{name: "missing delta", method: http.MethodPatch, path: base + "/order/lines/nope", body: map[string]string{}, wantStatus: http.StatusBadRequest},
		{name: "remove unknown line", method: http.MethodDelete, path: base + "/order/lines/nope", wantStatus: http.StatusNotFound},
		{name: "submit empty order", method: http.MethodPost, path: base + "/order/submit", body: map[string]string{"table": "4"}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body, nil)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if msg := errorMessage(t, w); msg == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestSubmitOrder(t *testing.T) {
	h := newTestServer(t)
	sessionID := openSession(t, h)
	addItem(t, h, sessionID, 2)
	addItem(t, h, sessionID, 5)

	var ticket TicketView
	w := do(t, h, http.MethodPost, "/api/sessions/"+sessionID+"/order/submit", map[string]string{"table": "7"}, &ticket)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if ticket.ID == "" || ticket.Table != "7" || ticket.Status != "pending" {
		t.Errorf("unexpected ticket: %+v", ticket)
	}
	if len(ticket.Items) != 2 || ticket.Items[0].Name != "Margherita Pizza" {
		t.Errorf("unexpected ticket items: %+v", ticket.Items)
	}
	if ticket.Subtotal != "180.00" || ticket.Total != "208.80" {
		t.Errorf("expected 180.00/208.80, got %s/%s", ticket.Subtotal, ticket.Total)
	}

	var order OrderView
	do(t, h, http.MethodGet, "/api/sessions/"+sessionID+"/order", nil, &order)
	if len(order.Lines) != 0 || order.Total != "0.00" {
		t.Errorf("expected the order to be cleared after submission, got %+v", order)
	}
}

func TestCloseSession(t *testing.T) {
	h := newTestServer(t)
	sessionID := openSession(t, h)
	addItem(t, h, sessionID, 1)

	w := do(t, h, http.MethodDelete, "/api/sessions/"+sessionID, nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/sessions/"+sessionID+"/order", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected closed session to be gone, got status %d", w.Code)
	}

	w = do(t, h, http.MethodDelete, "/api/sessions/"+sessionID, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 closing twice, got %d", w.Code)
	}
}
