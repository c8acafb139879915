package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/customization"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/kitchen"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/order"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrItemUnavailable = errors.New("menu item is not available")
)

// KitchenSubmitter receives finalized orders
type KitchenSubmitter interface {
	Submit(ctx context.Context, sub kitchen.Submission) (kitchen.Ticket, error)
}

// session is one customer's order and open customization.
// mu serializes every mutation of the session.
type session struct {
	id        string
	mu        sync.Mutex
	order     *order.Order
	builder   *customization.Builder
	createdAt time.Time
}

// LineSummary is an order line with its prices
type LineSummary struct {
	Line      models.OrderLine
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// OrderSummary is everything needed to render an order
type OrderSummary struct {
	SessionID string
	Lines     []LineSummary
	ItemCount int
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// SessionService owns the ordering sessions of all customers
type SessionService struct {
	catalog   repository.CatalogRepository
	submitter KitchenSubmitter
	taxRate   decimal.Decimal
	log       *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionService creates a new session service
func NewSessionService(catalog repository.CatalogRepository, submitter KitchenSubmitter, taxRate decimal.Decimal, log *slog.Logger) *SessionService {
	return &SessionService{
		catalog:   catalog,
		submitter: submitter,
		taxRate:   taxRate,
		log:       log,
		sessions:  make(map[string]*session),
	}
}

// TaxRate returns the configured tax rate
func (s *SessionService) TaxRate() decimal.Decimal {
	return s.taxRate
}

// CreateSession opens an empty order and returns its session ID
func (s *SessionService) CreateSession(ctx context.Context) string {
	sess := &session{
		id:        uuid.NewString(),
		order:     order.New(s.catalog),
		builder:   customization.NewBuilder(s.catalog),
		createdAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	activeSessions.Inc()
	s.log.Info("session created", "session_id", sess.id)
	return sess.id
}

// CloseSession cancels the order and forgets the session
func (s *SessionService) CloseSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, exists := s.sessions[sessionID]
	if exists {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	sess.builder.Cancel()
	sess.order.Clear()
	sess.mu.Unlock()

	activeSessions.Dec()
	s.log.Info("session closed", "session_id", sessionID)
	return nil
}

// Summary returns the order with line totals, subtotal, tax and grand total
func (s *SessionService) Summary(ctx context.Context, sessionID string) (*OrderSummary, error) {
	var summary *OrderSummary
	err := s.withSession(sessionID, func(sess *session) error {
		summary = s.summarize(sess)
		return nil
	})
	return summary, err
}

// AddItem adds one unit of a menu item without customization
func (s *SessionService) AddItem(ctx context.Context, sessionID string, itemID int64) (models.OrderLine, error) {
	item, err := s.orderableItem(itemID)
	if err != nil {
		return models.OrderLine{}, err
	}

	var line models.OrderLine
	err = s.withSession(sessionID, func(sess *session) error {
		line = sess.order.AddPlainItem(item)
		return nil
	})
	if err != nil {
		return models.OrderLine{}, err
	}

	linesAdded.WithLabelValues("plain").Inc()
	s.log.Debug("item added", "session_id", sessionID, "line_id", line.ID, "menu_item_id", itemID, "quantity", line.Quantity)
	return line, nil
}

// UpdateQuantity changes a line's quantity by delta, never below 1
func (s *SessionService) UpdateQuantity(ctx context.Context, sessionID, lineID string, delta int) (models.OrderLine, error) {
	var line models.OrderLine
	err := s.withSession(sessionID, func(sess *session) error {
		var err error
		line, err = sess.order.UpdateQuantity(lineID, delta)
		return err
	})
	return line, err
}

// RemoveLine deletes a line from the order
func (s *SessionService) RemoveLine(ctx context.Context, sessionID, lineID string) error {
	return s.withSession(sessionID, func(sess *session) error {
		return sess.order.RemoveLine(lineID)
	})
}

// StartCustomization opens the customization of a menu item
func (s *SessionService) StartCustomization(ctx context.Context, sessionID string, itemID int64) (customization.State, error) {
	item, err := s.orderableItem(itemID)
	if err != nil {
		return customization.State{}, err
	}
	return s.editCustomization(sessionID, func(b *customization.Builder) error {
		return b.Start(item)
	})
}

// CustomizationState returns the open customization with its live total
func (s *SessionService) CustomizationState(ctx context.Context, sessionID string) (customization.State, error) {
	return s.editCustomization(sessionID, func(b *customization.Builder) error {
		return nil
	})
}

// ToggleIngredient excludes or re-includes an ingredient of the open customization
func (s *SessionService) ToggleIngredient(ctx context.Context, sessionID, ingredientID string) (customization.State, error) {
	return s.editCustomization(sessionID, func(b *customization.Builder) error {
		return b.ToggleIngredientExcluded(ingredientID)
	})
}

// SetPreparation chooses the preparation of the open customization
func (s *SessionService) SetPreparation(ctx context.Context, sessionID, preparationID string) (customization.State, error) {
	return s.editCustomization(sessionID, func(b *customization.Builder) error {
		return b.SetPreparation(preparationID)
	})
}

// ToggleAddOn selects or deselects an add-on of the open customization
func (s *SessionService) ToggleAddOn(ctx context.Context, sessionID, addOnID string) (customization.State, error) {
	return s.editCustomization(sessionID, func(b *customization.Builder) error {
		return b.ToggleAddOn(addOnID)
	})
}

// ChangeCustomizationQuantity changes the quantity of the open customization by delta
func (s *SessionService) ChangeCustomizationQuantity(ctx context.Context, sessionID string, delta int) (customization.State, error) {
	return s.editCustomization(sessionID, func(b *customization.Builder) error {
		return b.SetQuantity(delta)
	})
}

// SetCustomizationNote replaces the note of the open customization
func (s *SessionService) SetCustomizationNote(ctx context.Context, sessionID, note string) (customization.State, error) {
	return s.editCustomization(sessionID, func(b *customization.Builder) error {
		return b.SetNote(note)
	})
}

// ConfirmCustomization closes the open customization and appends it to the order
func (s *SessionService) ConfirmCustomization(ctx context.Context, sessionID string) (models.OrderLine, error) {
	var line models.OrderLine
	err := s.withSession(sessionID, func(sess *session) error {
		item, c, err := sess.builder.Confirm()
		if err != nil {
			return err
		}
		line, err = sess.order.AddCustomizedItem(item, c)
		return err
	})
	if err != nil {
		return models.OrderLine{}, err
	}

	linesAdded.WithLabelValues("customized").Inc()
	s.log.Debug("customized item added", "session_id", sessionID, "line_id", line.ID, "menu_item_id", line.Item.ID, "quantity", line.Quantity)
	return line, nil
}

// CancelCustomization discards the open customization
func (s *SessionService) CancelCustomization(ctx context.Context, sessionID string) error {
	return s.withSession(sessionID, func(sess *session) error {
		if !sess.builder.Active() {
			return customization.ErrNoActiveCustomization
		}
		sess.builder.Cancel()
		return nil
	})
}

// Submit hands the order to the kitchen and clears it once the kitchen accepted it
func (s *SessionService) Submit(ctx context.Context, sessionID, table string) (kitchen.Ticket, error) {
	var ticket kitchen.Ticket
	err := s.withSession(sessionID, func(sess *session) error {
		if sess.order.Empty() {
			return ErrEmptyOrder
		}

		sub, err := s.submission(sess, table)
		if err != nil {
			return err
		}

		ticket, err = s.submitter.Submit(ctx, sub)
		if err != nil {
			return fmt.Errorf("submit to kitchen: %w", err)
		}

		sess.order.Clear()
		return nil
	})
	if err != nil {
		return kitchen.Ticket{}, err
	}

	ordersSubmitted.Inc()
	orderTotals.Observe(ticket.Total.InexactFloat64())
	s.log.Info("order submitted",
		"session_id", sessionID,
		"ticket_id", ticket.ID,
		"table", table,
		"items_count", len(ticket.Items),
		"total", ticket.Total.StringFixed(2),
	)
	return ticket, nil
}

func (s *SessionService) withSession(sessionID string, fn func(*session) error) error {
	s.mu.RLock()
	sess, exists := s.sessions[sessionID]
	s.mu.RUnlock()

	if !exists {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

func (s *SessionService) editCustomization(sessionID string, fn func(*customization.Builder) error) (customization.State, error) {
	var state customization.State
	err := s.withSession(sessionID, func(sess *session) error {
		if err := fn(sess.builder); err != nil {
			return err
		}
		var err error
		state, err = sess.builder.State()
		return err
	})
	return state, err
}

func (s *SessionService) orderableItem(itemID int64) (models.MenuItem, error) {
	item, err := s.catalog.LookupItem(itemID)
	if err != nil {
		return models.MenuItem{}, err
	}
	if !item.Available {
		return models.MenuItem{}, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
	}
	return item, nil
}

func (s *SessionService) summarize(sess *session) *OrderSummary {
	lines := sess.order.Snapshot()
	summary := &OrderSummary{
		SessionID: sess.id,
		Lines:     make([]LineSummary, 0, len(lines)),
		ItemCount: sess.order.ItemCount(),
		Subtotal:  sess.order.Subtotal(),
		TaxRate:   s.taxRate,
		Tax:       sess.order.Tax(s.taxRate),
		Total:     sess.order.GrandTotal(s.taxRate),
	}

	for _, line := range lines {
		// the line comes from the snapshot, so it always exists
		total, _ := sess.order.LineTotal(line.ID)
		summary.Lines = append(summary.Lines, LineSummary{
			Line:      line,
			UnitPrice: total.Div(decimal.NewFromInt(int64(line.Quantity))),
			LineTotal: total,
		})
	}
	return summary
}

// submission resolves option ids to names so the kitchen needs no catalog
func (s *SessionService) submission(sess *session, table string) (kitchen.Submission, error) {
	lines := sess.order.Snapshot()
	sub := kitchen.Submission{
		Table:    table,
		Items:    make([]kitchen.TicketItem, 0, len(lines)),
		Subtotal: sess.order.Subtotal(),
		Tax:      sess.order.Tax(s.taxRate),
		Total:    sess.order.GrandTotal(s.taxRate),
	}

	for _, line := range lines {
		total, err := sess.order.LineTotal(line.ID)
		if err != nil {
			return kitchen.Submission{}, err
		}

		item := kitchen.TicketItem{
			LineID:     line.ID,
			MenuItemID: line.Item.ID,
			Name:       line.Item.Name,
			Quantity:   line.Quantity,
			LineTotal:  total,
		}

		if c := line.Customization; c != nil {
			item.Note = c.Note
			for _, prep := range s.catalog.PreparationsFor(line.Item.ID) {
				if prep.ID == c.Preparation {
					item.Preparation = prep.Name
				}
			}
			excluded := make(map[string]bool, len(c.ExcludedIngredients))
			for _, id := range c.ExcludedIngredients {
				excluded[id] = true
			}
			for _, ing := range s.catalog.IngredientsFor(line.Item.ID) {
				if excluded[ing.ID] {
					item.ExcludedIngredients = append(item.ExcludedIngredients, ing.Name)
				}
			}
			for _, addOn := range s.catalog.AddOnsFor(line.Item.ID) {
				if c.HasAddOn(addOn.ID) {
					item.AddOns = append(item.AddOns, addOn.Name)
				}
			}
		}

		sub.Items = append(sub.Items, item)
	}
	return sub, nil
}
