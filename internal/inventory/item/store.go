// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import "context"

// Mutation receives the quantity of a row locked for update and returns the
// movement to record, or nil to record none. An error aborts the transaction.
type Mutation func(current int) (*History, error)

// # Item Data Access

// Repository defines the data access contract for items and their history.
//
// Every method is scoped to ownerID; rows of other owners behave as missing.
type Repository interface {

	/*
		List returns a filtered, paginated slice of items and the total count.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Item: Matching items with catalog names joined
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, ownerID string, filter Filter, limit, offset int) ([]*Item, int, error)

	/*
		FindByID retrieves an item with its catalog names joined.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - id: string

		Returns:
		  - *Item: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByID(context context.Context, ownerID, id string) (*Item, error)

	/*
		Create inserts item and, when given, its opening movement, atomically.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - item: *Item
		  - initial: *History (nil for an empty item)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, ownerID string, item *Item, initial *History) error

	/*
		Update rewrites the item's fields while its row is locked.

		Description: record sees the quantity before the update; the movement
		it returns is stored in the same transaction.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - item: *Item
		  - record: Mutation

		Returns:
		  - error: dberr.ErrNotFound, the Mutation's error, or persistence failures
	*/
	Update(context context.Context, ownerID string, item *Item, record Mutation) error

	/*
		Move applies a stock movement under a row lock.

		Description: The new quantity is the movement's QuantityAfter.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - itemID: string
		  - record: Mutation (must return a movement)

		Returns:
		  - *History: Stored movement
		  - error: dberr.ErrNotFound, the Mutation's error, or persistence failures
	*/
	Move(context context.Context, ownerID, itemID string, record Mutation) (*History, error)

	// Delete removes an item and, by cascade, its history.
	Delete(context context.Context, ownerID, id string) error

	// History lists an item's movements, newest first.
	History(context context.Context, ownerID, itemID string, limit, offset int) ([]*History, int, error)

	/*
		MissingReferences reports which references do not name a catalog row
		of the owner.

		Returns:
		  - []string: Field identifiers (FieldUnitID, ...) of unknown references
		  - error: Database retrieval failures
	*/
	MissingReferences(context context.Context, ownerID string, references References) ([]string, error)
}
