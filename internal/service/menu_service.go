package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/repository"
)

var ErrInvalidCategory = errors.New("invalid category")

// ItemDetails is a menu item with everything needed to customize it
type ItemDetails struct {
	Item         models.MenuItem
	Ingredients  []models.Ingredient
	Preparations []models.Preparation
	AddOns       []models.AddOn
	Customizable bool
}

// MenuService handles business logic for browsing the menu
type MenuService struct {
	repo repository.CatalogRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.CatalogRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// ListItems returns the menu, optionally limited to one category
func (s *MenuService) ListItems(ctx context.Context, category string) ([]models.MenuItem, error) {
	c := models.Category(category)
	if category != "" && !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return s.repo.ListItems(c), nil
}

// GetItem returns a menu item with its customization options
func (s *MenuService) GetItem(ctx context.Context, id int64) (*ItemDetails, error) {
	item, err := s.repo.LookupItem(id)
	if err != nil {
		return nil, err
	}

	return &ItemDetails{
		Item:         item,
		Ingredients:  s.repo.IngredientsFor(id),
		Preparations: s.repo.PreparationsFor(id),
		AddOns:       s.repo.AddOnsFor(id),
		Customizable: s.repo.HasCustomizationOptions(id),
	}, nil
}
