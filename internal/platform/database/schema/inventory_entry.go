// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// InventoryEntryTable describes the named, slugged catalog tables.
// 'inventory.category' and 'inventory.location' share this layout.
type InventoryEntryTable struct {
	Table       string
	ID          string
	UserID      string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// InventoryCategory is the schema definition for inventory.category
var InventoryCategory = newInventoryEntryTable("inventory.category")

// InventoryLocation is the schema definition for inventory.location
var InventoryLocation = newInventoryEntryTable("inventory.location")

func newInventoryEntryTable(table string) InventoryEntryTable {
	return InventoryEntryTable{
		Table:       table,
		ID:          "id",
		UserID:      "userid",
		Name:        "name",
		Slug:        "slug",
		Description: "description",
		CreatedAt:   "createdat",
		UpdatedAt:   "updatedat",
	}
}

// Columns returns the selectable columns, owner excluded.
func (t InventoryEntryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Description, t.CreatedAt, t.UpdatedAt}
}
