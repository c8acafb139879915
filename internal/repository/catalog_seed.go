package repository

import (
	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultCatalogData returns the house menu served when no catalog file is configured
func DefaultCatalogData() CatalogData {
	price := decimal.NewFromInt

	return CatalogData{
		Items: []models.MenuItem{
			{ID: 1, Name: "Classic Burger", Description: "Beef patty, lettuce, tomato, onion and cheese", Price: price(120), Category: models.CategoryMainCourses, Available: true},
			{ID: 2, Name: "Margherita Pizza", Description: "Tomato sauce, mozzarella and basil", Price: price(150), Category: models.CategoryMainCourses, Available: true},
			{ID: 3, Name: "Caesar Salad", Description: "Romaine lettuce, croutons, parmesan and caesar dressing", Price: price(90), Category: models.CategoryStarters, Available: true},
			{ID: 4, Name: "French Fries", Description: "Crispy salted fries", Price: price(50), Category: models.CategorySides, Available: true},
			{ID: 5, Name: "Soda", Description: "Cola, orange or lemon soda", Price: price(30), Category: models.CategoryDrinks, Available: true},
			{ID: 6, Name: "Chocolate Cake", Description: "Chocolate cake with ganache", Price: price(80), Category: models.CategoryDesserts, Available: true},
		},
		Ingredients: map[int64][]models.Ingredient{
			1: {
				{ID: "1-1", Name: "Beef patty", Available: true},
				{ID: "1-2", Name: "Lettuce", Available: true},
				{ID: "1-3", Name: "Tomato", Available: true},
				{ID: "1-4", Name: "Onion", Available: true},
				{ID: "1-5", Name: "Cheese", Available: true},
				{ID: "1-6", Name: "Pickles", Available: true},
			},
			2: {
				{ID: "2-1", Name: "Tomato sauce", Available: true},
				{ID: "2-2", Name: "Mozzarella", Available: true},
				{ID: "2-3", Name: "Basil", Available: true},
				{ID: "2-4", Name: "Olive oil", Available: true},
			},
		},
		Preparations: map[int64][]models.Preparation{
			1: {
				{ID: "prep-1", Name: "Medium well"},
				{ID: "prep-2", Name: "Medium"},
				{ID: "prep-3", Name: "Well done"},
			},
			2: {
				{ID: "prep-4", Name: "Thin crust"},
				{ID: "prep-5", Name: "Thick crust"},
			},
		},
		AddOns: map[int64][]models.AddOn{
			1: {
				{ID: "ad-1", Name: "Extra bacon", Price: price(15)},
				{ID: "ad-2", Name: "Extra cheese", Price: price(10)},
				{ID: "ad-3", Name: "Guacamole", Price: price(20)},
			},
			2: {
				{ID: "ad-4", Name: "Extra cheese", Price: price(15)},
				{ID: "ad-5", Name: "Mushrooms", Price: price(20)},
				{ID: "ad-6", Name: "Pepperoni", Price: price(25)},
			},
		},
	}
}

// NewInMemoryCatalogRepository creates a catalog with the default house menu
func NewInMemoryCatalogRepository() *InMemoryCatalogRepository {
	repo, err := NewCatalogRepository(DefaultCatalogData())
	if err != nil {
		panic("default catalog is invalid: " + err.Error())
	}
	return repo
}
