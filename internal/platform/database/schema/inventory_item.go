// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// InventoryItemTable represents the 'inventory.item' table
type InventoryItemTable struct {
	Table       string
	ID          string
	UserID      string
	Name        string
	Description string
	Quantity    string
	MinQuantity string
	UnitID      string
	CategoryID  string
	LocationID  string
	ExpiresAt   string
	CreatedAt   string
	UpdatedAt   string
}

// InventoryItem is the schema definition for inventory.item
var InventoryItem = InventoryItemTable{
	Table:       "inventory.item",
	ID:          "id",
	UserID:      "userid",
	Name:        "name",
	Description: "description",
	Quantity:    "quantity",
	MinQuantity: "minquantity",
	UnitID:      "unitid",
	CategoryID:  "categoryid",
	LocationID:  "locationid",
	ExpiresAt:   "expiresat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t InventoryItemTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Description, t.Quantity, t.MinQuantity,
		t.UnitID, t.CategoryID, t.LocationID, t.ExpiresAt, t.CreatedAt, t.UpdatedAt,
	}
}
