package repository

import (
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// catalogFile mirrors the YAML layout of a catalog file.
// Prices are read as strings so they never pass through a float.
type catalogFile struct {
	Items []struct {
		ID          int64  `koanf:"id"`
		Name        string `koanf:"name"`
		Description string `koanf:"description"`
		Price       string `koanf:"price"`
		Category    string `koanf:"category"`
		Available   *bool  `koanf:"available"`
		Ingredients []struct {
			ID        string `koanf:"id"`
			Name      string `koanf:"name"`
			Available *bool  `koanf:"available"`
		} `koanf:"ingredients"`
		Preparations []struct {
			ID   string `koanf:"id"`
			Name string `koanf:"name"`
		} `koanf:"preparations"`
		AddOns []struct {
			ID    string `koanf:"id"`
			Name  string `koanf:"name"`
			Price string `koanf:"price"`
		} `koanf:"add_ons"`
	} `koanf:"items"`
}

// LoadCatalogFile reads a YAML catalog file and builds a catalog from it.
// Items and ingredients without an "available" key are treated as available.
func LoadCatalogFile(path string) (*InMemoryCatalogRepository, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load catalog file: %w", err)
	}

	var raw catalogFile
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, fmt.Errorf("unmarshal catalog file: %w", err)
	}

	data := CatalogData{
		Items:        make([]models.MenuItem, 0, len(raw.Items)),
		Ingredients:  make(map[int64][]models.Ingredient),
		Preparations: make(map[int64][]models.Preparation),
		AddOns:       make(map[int64][]models.AddOn),
	}

	for _, it := range raw.Items {
		price, err := parsePrice(it.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: menu item %d: %v", ErrInvalidCatalog, it.ID, err)
		}
		data.Items = append(data.Items, models.MenuItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       price,
			Category:    models.Category(it.Category),
			Available:   it.Available == nil || *it.Available,
		})

		for _, ing := range it.Ingredients {
			data.Ingredients[it.ID] = append(data.Ingredients[it.ID], models.Ingredient{
				ID:        ing.ID,
				Name:      ing.Name,
				Available: ing.Available == nil || *ing.Available,
			})
		}
		for _, prep := range it.Preparations {
			data.Preparations[it.ID] = append(data.Preparations[it.ID], models.Preparation{
				ID:   prep.ID,
				Name: prep.Name,
			})
		}
		for _, addOn := range it.AddOns {
			addOnPrice, err := parsePrice(addOn.Price)
			if err != nil {
				return nil, fmt.Errorf("%w: add-on %q: %v", ErrInvalidCatalog, addOn.ID, err)
			}
			data.AddOns[it.ID] = append(data.AddOns[it.ID], models.AddOn{
				ID:    addOn.ID,
				Name:  addOn.Name,
				Price: addOnPrice,
			})
		}
	}

	return NewCatalogRepository(data)
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("price is required")
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", s)
	}
	return price, nil
}
