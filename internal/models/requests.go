package models

// AddItemRequest adds one unit of a menu item to an order
type AddItemRequest struct {
	MenuItemID int64 `json:"menuItemId"`
}

// QuantityRequest changes a quantity by Delta
type QuantityRequest struct {
	Delta *int `json:"delta"`
}

// StartCustomizationRequest opens the customization of a menu item
type StartCustomizationRequest struct {
	MenuItemID int64 `json:"menuItemId"`
}

// PreparationRequest chooses a preparation
type PreparationRequest struct {
	PreparationID string `json:"preparationId"`
}

// NoteRequest replaces the free-text note
type NoteRequest struct {
	Note string `json:"note"`
}

// SubmitOrderRequest sends an order to the kitchen
type SubmitOrderRequest struct {
	Table string `json:"table"`
}

// ItemStatusRequest moves a kitchen ticket item to a new status
type ItemStatusRequest struct {
	Status string `json:"status"`
}
