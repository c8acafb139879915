package handlers

import (
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/customization"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/kitchen"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/service"
	"github.com/shopspring/decimal"
)

// Amounts are rendered with two decimals; totals are never rounded before this point.

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type MenuItemView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       string          `json:"price"`
	Category    models.Category `json:"category"`
	Available   bool            `json:"available"`
}

type AddOnView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type MenuItemDetailsView struct {
	MenuItemView
	Customizable bool                 `json:"customizable"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
	Preparations []models.Preparation `json:"preparations"`
	AddOns       []AddOnView          `json:"addOns"`
}

type LineView struct {
	ID            string                `json:"id"`
	MenuItemID    int64                 `json:"menuItemId"`
	Name          string                `json:"name"`
	Quantity      int                   `json:"quantity"`
	UnitPrice     string                `json:"unitPrice"`
	LineTotal     string                `json:"lineTotal"`
	Customization *models.Customization `json:"customization,omitempty"`
}

type OrderView struct {
	SessionID string     `json:"sessionId"`
	Lines     []LineView `json:"lines"`
	ItemCount int        `json:"itemCount"`
	Subtotal  string     `json:"subtotal"`
	TaxRate   string     `json:"taxRate"`
	Tax       string     `json:"tax"`
	Total     string     `json:"total"`
}

type CustomizationView struct {
	MenuItemID          int64    `json:"menuItemId"`
	Name                string   `json:"name"`
	ExcludedIngredients []string `json:"excludedIngredients"`
	Preparation         string   `json:"preparation,omitempty"`
	AddOns              []string `json:"addOns"`
	Quantity            int      `json:"quantity"`
	Note                string   `json:"note"`
	Total               string   `json:"total"`
}

type TicketItemView struct {
	LineID              string             `json:"lineId"`
	MenuItemID          int64              `json:"menuItemId"`
	Name                string             `json:"name"`
	Quantity            int                `json:"quantity"`
	Preparation         string             `json:"preparation,omitempty"`
	ExcludedIngredients []string           `json:"excludedIngredients,omitempty"`
	AddOns              []string           `json:"addOns,omitempty"`
	Note                string             `json:"note,omitempty"`
	LineTotal           string             `json:"lineTotal"`
	Status              kitchen.ItemStatus `json:"status"`
	UpdatedAt           string             `json:"updatedAt"`
}

type TicketView struct {
	ID        string               `json:"id"`
	Table     string               `json:"table"`
	Status    kitchen.TicketStatus `json:"status"`
	Items     []TicketItemView     `json:"items"`
	Subtotal  string               `json:"subtotal"`
	Tax       string               `json:"tax"`
	Total     string               `json:"total"`
	CreatedAt string               `json:"createdAt"`
}

type ItemSalesView struct {
	MenuItemID int64  `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Revenue    string `json:"revenue"`
}

type ReportView struct {
	Tickets       int                          `json:"tickets"`
	Revenue       string                       `json:"revenue"`
	AverageTicket string                       `json:"averageTicket"`
	ByStatus      map[kitchen.TicketStatus]int `json:"byStatus"`
	TopItems      []ItemSalesView              `json:"topItems"`
}

func menuItemView(item models.MenuItem) MenuItemView {
	return MenuItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       money(item.Price),
		Category:    item.Category,
		Available:   item.Available,
	}
}

func menuItemDetailsView(d *service.ItemDetails) MenuItemDetailsView {
	view := MenuItemDetailsView{
		MenuItemView: menuItemView(d.Item),
		Customizable: d.Customizable,
		Ingredients:  d.Ingredients,
		Preparations: d.Preparations,
		AddOns:       make([]AddOnView, len(d.AddOns)),
	}
	for i, addOn := range d.AddOns {
		view.AddOns[i] = AddOnView{ID: addOn.ID, Name: addOn.Name, Price: money(addOn.Price)}
	}
	return view
}

func orderView(s *service.OrderSummary) OrderView {
	view := OrderView{
		SessionID: s.SessionID,
		Lines:     make([]LineView, len(s.Lines)),
		ItemCount: s.ItemCount,
		Subtotal:  money(s.Subtotal),
		TaxRate:   s.TaxRate.String(),
		Tax:       money(s.Tax),
		Total:     money(s.Total),
	}
	for i, l := range s.Lines {
		view.Lines[i] = LineView{
			ID:            l.Line.ID,
			MenuItemID:    l.Line.Item.ID,
			Name:          l.Line.Item.Name,
			Quantity:      l.Line.Quantity,
			UnitPrice:     money(l.UnitPrice),
			LineTotal:     money(l.LineTotal),
			Customization: l.Line.Customization,
		}
	}
	return view
}

func customizationView(s customization.State) CustomizationView {
	return CustomizationView{
		MenuItemID:          s.Item.ID,
		Name:                s.Item.Name,
		ExcludedIngredients: s.ExcludedIngredients,
		Preparation:         s.Preparation,
		AddOns:              s.AddOns,
		Quantity:            s.Quantity,
		Note:                s.Note,
		Total:               money(s.Total),
	}
}

func ticketView(t kitchen.Ticket) TicketView {
	view := TicketView{
		ID:        t.ID,
		Table:     t.Table,
		Status:    t.Status,
		Items:     make([]TicketItemView, len(t.Items)),
		Subtotal:  money(t.Subtotal),
		Tax:       money(t.Tax),
		Total:     money(t.Total),
		CreatedAt: t.CreatedAt.Format(timeLayout),
	}
	for i, item := range t.Items {
		view.Items[i] = TicketItemView{
			LineID:              item.LineID,
			MenuItemID:          item.MenuItemID,
			Name:                item.Name,
			Quantity:            item.Quantity,
			Preparation:         item.Preparation,
			ExcludedIngredients: item.ExcludedIngredients,
			AddOns:              item.AddOns,
			Note:                item.Note,
			LineTotal:           money(item.LineTotal),
			Status:              item.Status,
			UpdatedAt:           item.UpdatedAt.Format(timeLayout),
		}
	}
	return view
}

func reportView(r kitchen.Report) ReportView {
	view := ReportView{
		Tickets:       r.Tickets,
		Revenue:       money(r.Revenue),
		AverageTicket: money(r.AverageTicket),
		ByStatus:      r.ByStatus,
		TopItems:      make([]ItemSalesView, len(r.TopItems)),
	}
	for i, s := range r.TopItems {
		view.TopItems[i] = ItemSalesView{
			MenuItemID: s.MenuItemID,
			Name:       s.Name,
			Quantity:   s.Quantity,
			Revenue:    money(s.Revenue),
		}
	}
	return view
}
