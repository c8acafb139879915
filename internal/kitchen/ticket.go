package kitchen

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus tracks one ticket item through the kitchen
type ItemStatus string

const (
	ItemSent      ItemStatus = "sent"
	ItemReceived  ItemStatus = "received"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
)

// Valid reports whether s is a known item status
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemSent, ItemReceived, ItemPreparing, ItemReady:
		return true
	}
	return false
}

// TicketStatus is derived from the item statuses, except for cancellation
type TicketStatus string

const (
	TicketPending    TicketStatus = "pending"
	TicketInProgress TicketStatus = "in_progress"
	TicketCompleted  TicketStatus = "completed"
	TicketCancelled  TicketStatus = "cancelled"
)

// Valid reports whether s is a known ticket status
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketPending, TicketInProgress, TicketCompleted, TicketCancelled:
		return true
	}
	return false
}

// TicketItem is one order line as the kitchen sees it, with option names resolved
type TicketItem struct {
	LineID              string          `json:"lineId"`
	MenuItemID          int64           `json:"menuItemId"`
	Name                string          `json:"name"`
	Quantity            int             `json:"quantity"`
	Preparation         string          `json:"preparation,omitempty"`
	ExcludedIngredients []string        `json:"excludedIngredients,omitempty"`
	AddOns              []string        `json:"addOns,omitempty"`
	Note                string          `json:"note,omitempty"`
	LineTotal           decimal.Decimal `json:"lineTotal"`
	Status              ItemStatus      `json:"status"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Ticket is a submitted order tracked by the kitchen
type Ticket struct {
	ID        string          `json:"id"`
	Table     string          `json:"table"`
	Status    TicketStatus    `json:"status"`
	Items     []TicketItem    `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Submission is what the front of house hands to the kitchen
type Submission struct {
	Table    string
	Items    []TicketItem
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// deriveStatus: all ready is completed, anything past sent is in progress
func deriveStatus(items []TicketItem) TicketStatus {
	allReady := len(items) > 0
	started := false
	for _, item := range items {
		if item.Status != ItemReady {
			allReady = false
		}
		if item.Status != ItemSent {
			started = true
		}
	}

	switch {
	case allReady:
		return TicketCompleted
	case started:
		return TicketInProgress
	default:
		return TicketPending
	}
}

func cloneTicket(t *Ticket) Ticket {
	clone := *t
	clone.Items = make([]TicketItem, len(t.Items))
	for i, item := range t.Items {
		item.ExcludedIngredients = append([]string(nil), item.ExcludedIngredients...)
		item.AddOns = append([]string(nil), item.AddOns...)
		clone.Items[i] = item
	}
	return clone
}
