// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package item tracks household stock: what is on hand, where it is kept, and
every movement that changed its quantity.

# Core Responsibility

  - Items: [Item] with quantity, restock threshold and optional expiry.
  - Movements: [Reason] "in" adds, "out" subtracts, "adjust" sets an absolute
    count. Each movement writes one [History] row in the same transaction as
    the quantity change.
  - Discovery: Search, filtering by category and location, low-stock view and
    sorting, paginated.

Quantities never go below zero.
*/
package item

import "time"

// # Movement Reasons

// Reason explains a change in quantity.
type Reason string

const (
	ReasonIn     Reason = "in"
	ReasonOut    Reason = "out"
	ReasonAdjust Reason = "adjust"
)

// Reasons lists the accepted movement reasons.
var Reasons = []string{string(ReasonIn), string(ReasonOut), string(ReasonAdjust)}

// Apply returns the quantity after moving amount from current.
func (reason Reason) Apply(current, amount int) int {
	switch reason {
	case ReasonIn:
		return current + amount
	case ReasonOut:
		return current - amount
	default:
		return amount
	}
}

// # Core Entities

// Item is something the household keeps in stock.
type Item struct {
	ID          string     `json:"id"` // UUIDv7
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Quantity    int        `json:"quantity"`
	MinQuantity int        `json:"minQuantity"`
	UnitID      *string    `json:"unitId"`
	CategoryID  *string    `json:"categoryId"`
	LocationID  *string    `json:"locationId"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Joined from the catalog for list and detail views.
	UnitAbbreviation *string `json:"unitAbbreviation,omitempty"`
	CategoryName     *string `json:"categoryName,omitempty"`
	LocationName     *string `json:"locationName,omitempty"`
}

// IsLowStock reports whether the item is at or below its restock threshold.
func (item *Item) IsLowStock() bool {
	return item.Quantity <= item.MinQuantity
}

// History is one recorded stock movement.
type History struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	UserID        string    `json:"userId"`
	Change        int       `json:"change"`
	QuantityAfter int       `json:"quantityAfter"`
	Reason        Reason    `json:"reason"`
	Note          *string   `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
}

// # Search & Filtering

// Sort orders item listings.
type Sort string

const (
	SortName     Sort = "name"
	SortQuantity Sort = "quantity"
	SortUpdated  Sort = "updated"
	SortExpires  Sort = "expires"
)

// Filter holds parameters for searching and listing items.
type Filter struct {
	Query      string
	CategoryID string
	LocationID string
	LowStock   bool
	Sort       Sort
}

// References are the catalog rows an item points at.
type References struct {
	UnitID     *string
	CategoryID *string
	LocationID *string
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldMinQuantity = "minQuantity"
	FieldUnitID      = "unitId"
	FieldCategoryID  = "categoryId"
	FieldLocationID  = "locationId"
	FieldExpiresAt   = "expiresAt"
	FieldReason      = "reason"
	FieldNote        = "note"
)

// # Limits & Messages

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
	MaxNoteLength        = 500
	MaxQuantity          = 1_000_000

	MsgNameRequired     = "Name is required"
	MsgQuantityInteger  = "Quantity must be a whole number"
	MsgNotEnoughStock   = "Not enough stock for this movement"
	MsgExpiryInFuture   = "Expiry date must be in the future"
	MsgUnknownReference = "Not found in your catalog"
	MsgReasonInvalid    = "Reason must be in, out or adjust"
)
