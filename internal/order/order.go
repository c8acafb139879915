// Package order implements a customer's cart: an ordered list of lines with
// derived totals. Amounts are kept exact; rounding is left to presentation.
package order

import (
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrMissingCustomization = errors.New("customized line requires a customization")

// Catalog is the option lookup the order prices and validates lines with
type Catalog interface {
	IngredientsFor(itemID int64) []models.Ingredient
	PreparationsFor(itemID int64) []models.Preparation
	AddOnsFor(itemID int64) []models.AddOn
}

// Option configures an Order
type Option func(*Order)

// WithIDGenerator replaces the UUID line id generator
func WithIDGenerator(next func() string) Option {
	return func(o *Order) {
		o.newID = next
	}
}

// Order is the mutable cart of one session. It is not safe for concurrent use.
type Order struct {
	catalog Catalog
	lines   []models.OrderLine
	newID   func() string
}

// New creates an empty order priced against catalog
func New(catalog Catalog, opts ...Option) *Order {
	o := &Order{
		catalog: catalog,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AddPlainItem adds one unit of item. An existing uncustomized line for the
// same item absorbs it; otherwise a new line with quantity 1 is appended.
func (o *Order) AddPlainItem(item models.MenuItem) models.OrderLine {
	for i := range o.lines {
		line := &o.lines[i]
		if line.Item.ID == item.ID && !line.Customized() {
			line.Quantity++
			return cloneLine(*line)
		}
	}

	line := models.OrderLine{
		ID:       o.nextLineID(),
		Item:     item,
		Quantity: 1,
	}
	o.lines = append(o.lines, line)
	return cloneLine(line)
}

// AddCustomizedItem always appends a new line with the customization's quantity.
// Customized lines never merge, not even with an identical customization.
func (o *Order) AddCustomizedItem(item models.MenuItem, c *models.Customization) (models.OrderLine, error) {
	if c == nil {
		return models.OrderLine{}, ErrMissingCustomization
	}
	if err := o.checkReferences(item, c); err != nil {
		return models.OrderLine{}, err
	}

	custom := c.Clone()
	custom.Quantity = max(1, custom.Quantity)

	line := models.OrderLine{
		ID:            o.nextLineID(),
		Item:          item,
		Quantity:      custom.Quantity,
		Customization: custom,
	}
	o.lines = append(o.lines, line)
	return cloneLine(line), nil
}

// UpdateQuantity changes a line's quantity by delta, never below 1
func (o *Order) UpdateQuantity(lineID string, delta int) (models.OrderLine, error) {
	i, err := o.indexOf(lineID)
	if err != nil {
		return models.OrderLine{}, err
	}
	o.lines[i].Quantity = max(1, o.lines[i].Quantity+delta)
	return cloneLine(o.lines[i]), nil
}

// RemoveLine deletes a line; the order is unchanged when the id is unknown
func (o *Order) RemoveLine(lineID string) error {
	i, err := o.indexOf(lineID)
	if err != nil {
		return err
	}
	o.lines = append(o.lines[:i], o.lines[i+1:]...)
	return nil
}

// LineTotal returns (unit price + chosen add-on prices) * quantity for a line
func (o *Order) LineTotal(lineID string) (decimal.Decimal, error) {
	i, err := o.indexOf(lineID)
	if err != nil {
		return decimal.Zero, err
	}
	return o.lineTotal(o.lines[i]), nil
}

// ItemCount returns the number of units across all lines
func (o *Order) ItemCount() int {
	count := 0
	for _, line := range o.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal returns the sum of all line totals
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range o.lines {
		subtotal = subtotal.Add(o.lineTotal(line))
	}
	return subtotal
}

// Tax returns subtotal * rate
func (o *Order) Tax(rate decimal.Decimal) decimal.Decimal {
	return o.Subtotal().Mul(rate)
}

// GrandTotal returns subtotal * (1 + rate)
func (o *Order) GrandTotal(rate decimal.Decimal) decimal.Decimal {
	return o.Subtotal().Mul(decimal.NewFromInt(1).Add(rate))
}

// Len returns the number of lines
func (o *Order) Len() int {
	return len(o.lines)
}

// Empty reports whether the order has no lines
func (o *Order) Empty() bool {
	return len(o.lines) == 0
}

// Snapshot returns a copy of the lines in insertion order
func (o *Order) Snapshot() []models.OrderLine {
	lines := make([]models.OrderLine, len(o.lines))
	for i, line := range o.lines {
		lines[i] = cloneLine(line)
	}
	return lines
}

// Clear removes every line
func (o *Order) Clear() {
	o.lines = nil
}

func (o *Order) lineTotal(line models.OrderLine) decimal.Decimal {
	unit := line.Item.Price
	if line.Customized() && len(line.Customization.AddOns) > 0 {
		for _, addOn := range o.catalog.AddOnsFor(line.Item.ID) {
			if line.Customization.HasAddOn(addOn.ID) {
				unit = unit.Add(addOn.Price)
			}
		}
	}
	return unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

func (o *Order) indexOf(lineID string) (int, error) {
	for i, line := range o.lines {
		if line.ID == lineID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("order line %q: %w", lineID, models.ErrNotFound)
}

// nextLineID skips ids already in use so an injected generator cannot break uniqueness
func (o *Order) nextLineID() string {
	for {
		id := o.newID()
		if _, err := o.indexOf(id); err != nil {
			return id
		}
	}
}

func (o *Order) checkReferences(item models.MenuItem, c *models.Customization) error {
	ingredients := make(map[string]bool)
	for _, ing := range o.catalog.IngredientsFor(item.ID) {
		ingredients[ing.ID] = true
	}
	for _, id := range c.ExcludedIngredients {
		if !ingredients[id] {
			return fmt.Errorf("ingredient %q for item %d: %w", id, item.ID, models.ErrInvalidReference)
		}
	}

	if c.Preparation != "" {
		found := false
		for _, prep := range o.catalog.PreparationsFor(item.ID) {
			if prep.ID == c.Preparation {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("preparation %q for item %d: %w", c.Preparation, item.ID, models.ErrInvalidReference)
		}
	}

	addOns := make(map[string]bool)
	for _, addOn := range o.catalog.AddOnsFor(item.ID) {
		addOns[addOn.ID] = true
	}
	for _, id := range c.AddOns {
		if !addOns[id] {
			return fmt.Errorf("add-on %q for item %d: %w", id, item.ID, models.ErrInvalidReference)
		}
	}
	return nil
}

func cloneLine(line models.OrderLine) models.OrderLine {
	line.Customization = line.Customization.Clone()
	return line
}
