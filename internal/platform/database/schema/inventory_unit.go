// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// InventoryUnitTable represents the 'inventory.unit' table
type InventoryUnitTable struct {
	Table        string
	ID           string
	UserID       string
	Name         string
	Abbreviation string
	CreatedAt    string
	UpdatedAt    string
}

// InventoryUnit is the schema definition for inventory.unit
var InventoryUnit = InventoryUnitTable{
	Table:        "inventory.unit",
	ID:           "id",
	UserID:       "userid",
	Name:         "name",
	Abbreviation: "abbreviation",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t InventoryUnitTable) Columns() []string {
	return []string{t.ID, t.Name, t.Abbreviation, t.CreatedAt, t.UpdatedAt}
}
