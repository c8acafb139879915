// Package kitchen tracks submitted orders while the kitchen prepares them
// and summarizes them for the admin reports.
package kitchen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTicket    = errors.New("ticket must contain at least one item")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrItemNotFound   = errors.New("ticket item not found")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrTicketClosed   = errors.New("ticket is closed")
)

const (
	EventTicketSubmitted = "ticket.submitted"
	EventTicketUpdated   = "ticket.updated"
)

// Event describes a change on the board
type Event struct {
	Type       string    `json:"type"`
	Ticket     Ticket    `json:"ticket"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Notifier receives board events, e.g. to fan them out to kitchen displays
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// Board is the in-memory kitchen order board. It is safe for concurrent use.
type Board struct {
	mu       sync.RWMutex
	tickets  map[string]*Ticket
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// BoardOption configures a Board
type BoardOption func(*Board)

// WithNotifier sends every board event to n
func WithNotifier(n Notifier) BoardOption {
	return func(b *Board) {
		b.notifier = n
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) BoardOption {
	return func(b *Board) {
		b.now = now
	}
}

// NewBoard creates an empty board
func NewBoard(logger *slog.Logger, opts ...BoardOption) *Board {
	b := &Board{
		tickets: make(map[string]*Ticket),
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Submit opens a ticket for the submission with every item in the sent state
func (b *Board) Submit(ctx context.Context, sub Submission) (Ticket, error) {
	if len(sub.Items) == 0 {
		return Ticket{}, ErrEmptyTicket
	}

	now := b.now().UTC()
	ticket := &Ticket{
		ID:        uuid.NewString(),
		Table:     sub.Table,
		Status:    TicketPending,
		Items:     make([]TicketItem, len(sub.Items)),
		Subtotal:  sub.Subtotal,
		Tax:       sub.Tax,
		Total:     sub.Total,
		CreatedAt: now,
	}
	for i, item := range sub.Items {
		item.Status = ItemSent
		item.UpdatedAt = now
		ticket.Items[i] = item
	}

	b.mu.Lock()
	b.tickets[ticket.ID] = ticket
	snapshot := cloneTicket(ticket)
	b.mu.Unlock()

	b.logger.Info("ticket submitted",
		"ticket_id", snapshot.ID,
		"table", snapshot.Table,
		"items_count", len(snapshot.Items),
		"total", snapshot.Total.StringFixed(2),
	)
	b.notify(ctx, EventTicketSubmitted, snapshot)

	return snapshot, nil
}

// Get returns a ticket by its ID
func (b *Board) Get(id string) (Ticket, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ticket, exists := b.tickets[id]
	if !exists {
		return Ticket{}, ErrTicketNotFound
	}
	return cloneTicket(ticket), nil
}

// List returns tickets oldest first, limited to status when it is not empty
func (b *Board) List(status TicketStatus) []Ticket {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tickets := make([]Ticket, 0, len(b.tickets))
	for _, ticket := range b.tickets {
		if status != "" && ticket.Status != status {
			continue
		}
		tickets = append(tickets, cloneTicket(ticket))
	}

	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].ID < tickets[j].ID
		}
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})
	return tickets
}

// UpdateItemStatus moves one item to status and re-derives the ticket status
func (b *Board) UpdateItemStatus(ctx context.Context, ticketID, lineID string, status ItemStatus) (Ticket, error) {
	if !status.Valid() {
		return Ticket{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	b.mu.Lock()
	ticket, exists := b.tickets[ticketID]
	if !exists {
		b.mu.Unlock()
		return Ticket{}, ErrTicketNotFound
	}
	if ticket.Status == TicketCancelled {
		b.mu.Unlock()
		return Ticket{}, ErrTicketClosed
	}

	found := false
	for i := range ticket.Items {
		if ticket.Items[i].LineID == lineID {
			ticket.Items[i].Status = status
			ticket.Items[i].UpdatedAt = b.now().UTC()
			found = true
			break
		}
	}
	if !found {
		b.mu.Unlock()
		return Ticket{}, fmt.Errorf("%w: %q", ErrItemNotFound, lineID)
	}

	ticket.Status = deriveStatus(ticket.Items)
	snapshot := cloneTicket(ticket)
	b.mu.Unlock()

	b.logger.Info("ticket item updated",
		"ticket_id", ticketID,
		"line_id", lineID,
		"item_status", status,
		"ticket_status", snapshot.Status,
	)
	b.notify(ctx, EventTicketUpdated, snapshot)

	return snapshot, nil
}

// Cancel closes a ticket that has not been completed
func (b *Board) Cancel(ctx context.Context, ticketID string) (Ticket, error) {
	b.mu.Lock()
	ticket, exists := b.tickets[ticketID]
	if !exists {
		b.mu.Unlock()
		return Ticket{}, ErrTicketNotFound
	}
	if ticket.Status == TicketCompleted || ticket.Status == TicketCancelled {
		b.mu.Unlock()
		return Ticket{}, fmt.Errorf("%w: %s", ErrTicketClosed, ticket.Status)
	}
	ticket.Status = TicketCancelled
	snapshot := cloneTicket(ticket)
	b.mu.Unlock()

	b.logger.Info("ticket cancelled", "ticket_id", ticketID)
	b.notify(ctx, EventTicketUpdated, snapshot)

	return snapshot, nil
}

// notify logs publish failures instead of returning them
func (b *Board) notify(ctx context.Context, eventType string, ticket Ticket) {
	if b.notifier == nil {
		return
	}
	event := Event{
		Type:       eventType,
		Ticket:     ticket,
		OccurredAt: b.now().UTC(),
	}
	if err := b.notifier.Publish(ctx, event); err != nil {
		b.logger.Warn("failed to publish kitchen event",
			"event", eventType,
			"ticket_id", ticket.ID,
			"error", err,
		)
	}
}
