// Package customization accumulates a customer's choices for one menu item
// until they are confirmed into an immutable models.Customization.
package customization

import (
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNoActiveCustomization   = errors.New("no customization in progress")
	ErrCustomizationInProgress = errors.New("a customization is already in progress")
)

// Options is the catalog view the builder validates choices against
type Options interface {
	IngredientsFor(itemID int64) []models.Ingredient
	PreparationsFor(itemID int64) []models.Preparation
	AddOnsFor(itemID int64) []models.AddOn
}

// Builder holds at most one in-progress customization.
// It is not safe for concurrent use; callers serialize access per session.
type Builder struct {
	options Options
	active  *draft
}

// draft is the mutable state of the customization being edited
type draft struct {
	item         models.MenuItem
	ingredients  []models.Ingredient
	preparations []models.Preparation
	addOns       []models.AddOn

	excluded    map[string]bool
	preparation string
	chosen      map[string]bool
	quantity    int
	note        string
}

// State is a read-only view of the customization being edited
type State struct {
	Item                models.MenuItem
	ExcludedIngredients []string
	Preparation         string
	AddOns              []string
	Quantity            int
	Note                string
	Total               decimal.Decimal
}

// NewBuilder creates a builder that validates choices against options
func NewBuilder(options Options) *Builder {
	return &Builder{options: options}
}

// Active reports whether a customization is in progress
func (b *Builder) Active() bool {
	return b.active != nil
}

// Start opens a customization for item with quantity 1, nothing excluded,
// no add-ons, an empty note and the first preparation preselected.
// An open customization must be confirmed or cancelled first.
func (b *Builder) Start(item models.MenuItem) error {
	if b.active != nil {
		return fmt.Errorf("%w: %s", ErrCustomizationInProgress, b.active.item.Name)
	}

	d := &draft{
		item:         item,
		ingredients:  b.options.IngredientsFor(item.ID),
		preparations: b.options.PreparationsFor(item.ID),
		addOns:       b.options.AddOnsFor(item.ID),
		excluded:     make(map[string]bool),
		chosen:       make(map[string]bool),
		quantity:     1,
	}
	if len(d.preparations) > 0 {
		d.preparation = d.preparations[0].ID
	}

	b.active = d
	return nil
}

// ToggleIngredientExcluded adds the ingredient to the exclusions or removes it
func (b *Builder) ToggleIngredientExcluded(ingredientID string) error {
	d, err := b.current()
	if err != nil {
		return err
	}
	if !d.hasIngredient(ingredientID) {
		return fmt.Errorf("ingredient %q for %s: %w", ingredientID, d.item.Name, models.ErrInvalidReference)
	}

	if d.excluded[ingredientID] {
		delete(d.excluded, ingredientID)
	} else {
		d.excluded[ingredientID] = true
	}
	return nil
}

// SetPreparation replaces the chosen preparation
func (b *Builder) SetPreparation(preparationID string) error {
	d, err := b.current()
	if err != nil {
		return err
	}
	for _, prep := range d.preparations {
		if prep.ID == preparationID {
			d.preparation = preparationID
			return nil
		}
	}
	return fmt.Errorf("preparation %q for %s: %w", preparationID, d.item.Name, models.ErrInvalidReference)
}

// ToggleAddOn adds the add-on to the selection or removes it
func (b *Builder) ToggleAddOn(addOnID string) error {
	d, err := b.current()
	if err != nil {
		return err
	}
	if _, ok := d.addOn(addOnID); !ok {
		return fmt.Errorf("add-on %q for %s: %w", addOnID, d.item.Name, models.ErrInvalidReference)
	}

	if d.chosen[addOnID] {
		delete(d.chosen, addOnID)
	} else {
		d.chosen[addOnID] = true
	}
	return nil
}

// SetQuantity changes the quantity by delta; it never drops below 1
func (b *Builder) SetQuantity(delta int) error {
	d, err := b.current()
	if err != nil {
		return err
	}
	d.quantity = max(1, d.quantity+delta)
	return nil
}

// SetNote replaces the free-text note verbatim
func (b *Builder) SetNote(note string) error {
	d, err := b.current()
	if err != nil {
		return err
	}
	d.note = note
	return nil
}

// Total returns (unit price + chosen add-ons) * quantity.
// Excluded ingredients never change the price.
func (b *Builder) Total() (decimal.Decimal, error) {
	d, err := b.current()
	if err != nil {
		return decimal.Zero, err
	}
	return d.total(), nil
}

// State returns a snapshot of the customization being edited
func (b *Builder) State() (State, error) {
	d, err := b.current()
	if err != nil {
		return State{}, err
	}
	c := d.snapshot()
	return State{
		Item:                d.item,
		ExcludedIngredients: c.ExcludedIngredients,
		Preparation:         c.Preparation,
		AddOns:              c.AddOns,
		Quantity:            c.Quantity,
		Note:                c.Note,
		Total:               d.total(),
	}, nil
}

// Confirm closes the customization and returns the finalized record
// together with the item it was built for. The order is not touched.
func (b *Builder) Confirm() (models.MenuItem, *models.Customization, error) {
	d, err := b.current()
	if err != nil {
		return models.MenuItem{}, nil, err
	}
	b.active = nil
	return d.item, d.snapshot(), nil
}

// Cancel discards the customization in progress, if any
func (b *Builder) Cancel() {
	b.active = nil
}

func (b *Builder) current() (*draft, error) {
	if b.active == nil {
		return nil, ErrNoActiveCustomization
	}
	return b.active, nil
}

func (d *draft) hasIngredient(id string) bool {
	for _, ing := range d.ingredients {
		if ing.ID == id {
			return true
		}
	}
	return false
}

func (d *draft) addOn(id string) (models.AddOn, bool) {
	for _, addOn := range d.addOns {
		if addOn.ID == id {
			return addOn, true
		}
	}
	return models.AddOn{}, false
}

func (d *draft) total() decimal.Decimal {
	unit := d.item.Price
	for _, addOn := range d.addOns {
		if d.chosen[addOn.ID] {
			unit = unit.Add(addOn.Price)
		}
	}
	return unit.Mul(decimal.NewFromInt(int64(d.quantity)))
}

// snapshot lists ids in catalog order so equal choices produce equal records
func (d *draft) snapshot() *models.Customization {
	c := &models.Customization{
		ExcludedIngredients: make([]string, 0, len(d.excluded)),
		Preparation:         d.preparation,
		AddOns:              make([]string, 0, len(d.chosen)),
		Quantity:            d.quantity,
		Note:                d.note,
	}
	for _, ing := range d.ingredients {
		if d.excluded[ing.ID] {
			c.ExcludedIngredients = append(c.ExcludedIngredients, ing.ID)
		}
	}
	for _, addOn := range d.addOns {
		if d.chosen[addOn.ID] {
			c.AddOns = append(c.AddOns, addOn.ID)
		}
	}
	return c
}
