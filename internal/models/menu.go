package models

import "github.com/shopspring/decimal"

// Category groups menu items on the customer menu
type Category string

const (
	CategoryStarters    Category = "starters"
	CategoryMainCourses Category = "main-courses"
	CategorySides       Category = "sides"
	CategoryDrinks      Category = "drinks"
	CategoryDesserts    Category = "desserts"
)

// Categories lists every category in menu display order
var Categories = []Category{
	CategoryStarters,
	CategoryMainCourses,
	CategorySides,
	CategoryDrinks,
	CategoryDesserts,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MenuItem represents a dish or drink that can be ordered
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Available   bool            `json:"available"`
}

// Ingredient is a component of a menu item that a customer may leave out
type Ingredient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Preparation is one way a menu item can be cooked or served
type Preparation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddOn is an extra that raises the unit price of a menu item
type AddOn struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
