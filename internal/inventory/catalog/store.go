// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Catalog Data Access

// Repository defines the data access contract for catalog entries and units.
//
// Every method is scoped to ownerID. Rows of other owners behave as missing
// (dberr.ErrNotFound); a duplicate name per owner yields dberr.ErrConflict.
type Repository interface {

	/*
		ListEntries returns the owner's entries of a collection, by name.

		Parameters:
		  - context: context.Context
		  - collection: Collection
		  - ownerID: string

		Returns:
		  - []*Entry: Possibly empty list
		  - error: Database retrieval failures
	*/
	ListEntries(context context.Context, collection Collection, ownerID string) ([]*Entry, error)

	/*
		FindEntry retrieves one entry by ID.

		Parameters:
		  - context: context.Context
		  - collection: Collection
		  - ownerID: string
		  - id: string

		Returns:
		  - *Entry: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindEntry(context context.Context, collection Collection, ownerID, id string) (*Entry, error)

	/*
		CreateEntry inserts entry and fills its timestamps.

		Parameters:
		  - context: context.Context
		  - collection: Collection
		  - ownerID: string
		  - entry: *Entry

		Returns:
		  - error: dberr.ErrConflict or persistence failures
	*/
	CreateEntry(context context.Context, collection Collection, ownerID string, entry *Entry) error

	/*
		UpdateEntry replaces name, slug and description.

		Parameters:
		  - context: context.Context
		  - collection: Collection
		  - ownerID: string
		  - entry: *Entry

		Returns:
		  - error: dberr.ErrNotFound, dberr.ErrConflict or persistence failures
	*/
	UpdateEntry(context context.Context, collection Collection, ownerID string, entry *Entry) error

	// DeleteEntry removes an entry; items that referenced it keep a null reference.
	DeleteEntry(context context.Context, collection Collection, ownerID, id string) error

	// # Units

	ListUnits(context context.Context, ownerID string) ([]*Unit, error)
	FindUnit(context context.Context, ownerID, id string) (*Unit, error)
	CreateUnit(context context.Context, ownerID string, unit *Unit) error
	UpdateUnit(context context.Context, ownerID string, unit *Unit) error
	DeleteUnit(context context.Context, ownerID, id string) error
}
