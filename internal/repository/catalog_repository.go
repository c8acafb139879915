package repository

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
)

var (
	ErrItemNotFound   = fmt.Errorf("menu item %w", models.ErrNotFound)
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// CatalogRepository defines read access to the menu and its customization options
type CatalogRepository interface {
	ListItems(category models.Category) []models.MenuItem
	LookupItem(id int64) (models.MenuItem, error)
	IngredientsFor(itemID int64) []models.Ingredient
	PreparationsFor(itemID int64) []models.Preparation
	AddOnsFor(itemID int64) []models.AddOn
	HasCustomizationOptions(itemID int64) bool
}

// CatalogData is the static description a catalog is built from.
// Option tables are keyed by menu item id.
type CatalogData struct {
	Items        []models.MenuItem
	Ingredients  map[int64][]models.Ingredient
	Preparations map[int64][]models.Preparation
	AddOns       map[int64][]models.AddOn
}

// InMemoryCatalogRepository implements CatalogRepository over immutable in-memory tables
type InMemoryCatalogRepository struct {
	items        map[int64]models.MenuItem
	order        []int64
	ingredients  map[int64][]models.Ingredient
	preparations map[int64][]models.Preparation
	addOns       map[int64][]models.AddOn
}

// NewCatalogRepository validates data and builds a read-only catalog from it
func NewCatalogRepository(data CatalogData) (*InMemoryCatalogRepository, error) {
	r := &InMemoryCatalogRepository{
		items:        make(map[int64]models.MenuItem, len(data.Items)),
		order:        make([]int64, 0, len(data.Items)),
		ingredients:  make(map[int64][]models.Ingredient),
		preparations: make(map[int64][]models.Preparation),
		addOns:       make(map[int64][]models.AddOn),
	}

	for _, item := range data.Items {
		if _, exists := r.items[item.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate menu item id %d", ErrInvalidCatalog, item.ID)
		}
		if item.Name == "" {
			return nil, fmt.Errorf("%w: menu item %d has no name", ErrInvalidCatalog, item.ID)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: menu item %d has a negative price", ErrInvalidCatalog, item.ID)
		}
		if !item.Category.Valid() {
			return nil, fmt.Errorf("%w: menu item %d has unknown category %q", ErrInvalidCatalog, item.ID, item.Category)
		}
		r.items[item.ID] = item
		r.order = append(r.order, item.ID)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })

	for itemID, ingredients := range data.Ingredients {
		ids := make([]string, len(ingredients))
		for i, ing := range ingredients {
			ids[i] = ing.ID
		}
		if err := r.checkOptions(itemID, "ingredient", ids); err != nil {
			return nil, err
		}
		r.ingredients[itemID] = append([]models.Ingredient{}, ingredients...)
	}

	for itemID, preparations := range data.Preparations {
		ids := make([]string, len(preparations))
		for i, prep := range preparations {
			ids[i] = prep.ID
		}
		if err := r.checkOptions(itemID, "preparation", ids); err != nil {
			return nil, err
		}
		r.preparations[itemID] = append([]models.Preparation{}, preparations...)
	}

	for itemID, addOns := range data.AddOns {
		ids := make([]string, len(addOns))
		for i, addOn := range addOns {
			if addOn.Price.IsNegative() {
				return nil, fmt.Errorf("%w: add-on %q has a negative price", ErrInvalidCatalog, addOn.ID)
			}
			ids[i] = addOn.ID
		}
		if err := r.checkOptions(itemID, "add-on", ids); err != nil {
			return nil, err
		}
		r.addOns[itemID] = append([]models.AddOn{}, addOns...)
	}

	return r, nil
}

func (r *InMemoryCatalogRepository) checkOptions(itemID int64, kind string, ids []string) error {
	if _, exists := r.items[itemID]; !exists {
		return fmt.Errorf("%w: %s options for unknown menu item %d", ErrInvalidCatalog, kind, itemID)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: %s of menu item %d has an empty id", ErrInvalidCatalog, kind, itemID)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate %s id %q for menu item %d", ErrInvalidCatalog, kind, id, itemID)
		}
		seen[id] = true
	}
	return nil
}

// ListItems returns menu items in id order, limited to category when it is not empty
func (r *InMemoryCatalogRepository) ListItems(category models.Category) []models.MenuItem {
	items := make([]models.MenuItem, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	return items
}

// LookupItem returns a menu item by its ID
func (r *InMemoryCatalogRepository) LookupItem(id int64) (models.MenuItem, error) {
	item, exists := r.items[id]
	if !exists {
		return models.MenuItem{}, ErrItemNotFound
	}
	return item, nil
}

// IngredientsFor returns the removable ingredients of an item, never nil
func (r *InMemoryCatalogRepository) IngredientsFor(itemID int64) []models.Ingredient {
	return append([]models.Ingredient{}, r.ingredients[itemID]...)
}

// PreparationsFor returns the preparation choices of an item in display order, never nil
func (r *InMemoryCatalogRepository) PreparationsFor(itemID int64) []models.Preparation {
	return append([]models.Preparation{}, r.preparations[itemID]...)
}

// AddOnsFor returns the priced extras of an item, never nil
func (r *InMemoryCatalogRepository) AddOnsFor(itemID int64) []models.AddOn {
	return append([]models.AddOn{}, r.addOns[itemID]...)
}

// HasCustomizationOptions reports whether the item has any ingredient, preparation or add-on
func (r *InMemoryCatalogRepository) HasCustomizationOptions(itemID int64) bool {
	return len(r.ingredients[itemID]) > 0 ||
		len(r.preparations[itemID]) > 0 ||
		len(r.addOns[itemID]) > 0
}
