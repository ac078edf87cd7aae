// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// InventoryItemHistoryTable represents the 'inventory.itemhistory' table
type InventoryItemHistoryTable struct {
	Table         string
	ID            string
	ItemID        string
	UserID        string
	Change        string
	QuantityAfter string
	Reason        string
	Note          string
	CreatedAt     string
}

// InventoryItemHistory is the schema definition for inventory.itemhistory
var InventoryItemHistory = InventoryItemHistoryTable{
	Table:         "inventory.itemhistory",
	ID:            "id",
	ItemID:        "itemid",
	UserID:        "userid",
	Change:        "change",
	QuantityAfter: "quantityafter",
	Reason:        "reason",
	Note:          "note",
	CreatedAt:     "createdat",
}

func (t InventoryItemHistoryTable) Columns() []string {
	return []string{t.ID, t.ItemID, t.UserID, t.Change, t.QuantityAfter, t.Reason, t.Note, t.CreatedAt}
}
