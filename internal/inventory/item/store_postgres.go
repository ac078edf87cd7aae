// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hms/internal/platform/database/schema"
	"github.com/taibuivan/hms/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed item store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// itemSelect reads an item with its catalog names. The alias i is the item.
const itemSelect = `
	SELECT
		i.id, i.name, i.description, i.quantity, i.minquantity,
		i.unitid, i.categoryid, i.locationid, i.expiresat, i.createdat, i.updatedat,
		u.abbreviation, c.name, l.name`

const itemJoins = `
	FROM inventory.item i
	LEFT JOIN inventory.unit u ON u.id = i.unitid
	LEFT JOIN inventory.category c ON c.id = i.categoryid
	LEFT JOIN inventory.location l ON l.id = i.locationid`

// sortClauses maps a [Sort] onto ORDER BY. Name is the fallback.
var sortClauses = map[Sort]string{
	SortName:     "i.name ASC, i.id ASC",
	SortQuantity: "i.quantity ASC, i.name ASC",
	SortUpdated:  "i.updatedat DESC, i.id DESC",
	SortExpires:  "i.expiresat ASC NULLS LAST, i.name ASC",
}

var historyColumns = strings.Join(schema.InventoryItemHistory.Columns(), ", ")

// # Item Retrieval

/*
List returns a filtered, paginated slice of items and the total count.

Description: The query is assembled with positional arguments; only the
ORDER BY clause comes from a fixed map, never from input.

Parameters:
  - context: context.Context
  - ownerID: string
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Item: Matching items
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, ownerID string, filter Filter, limit, offset int) ([]*Item, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(itemSelect)
	queryBuilder.WriteString(`, COUNT(*) OVER() AS total`)
	queryBuilder.WriteString(itemJoins)
	queryBuilder.WriteString(` WHERE i.userid = $1`)

	args := []any{ownerID}
	argID := 2

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (i.name ILIKE $%d OR i.description ILIKE $%d)", argID, argID))
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		argID++
	}

	if filter.CategoryID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND i.categoryid = $%d", argID))
		args = append(args, filter.CategoryID)
		argID++
	}

	if filter.LocationID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND i.locationid = $%d", argID))
		args = append(args, filter.LocationID)
		argID++
	}

	if filter.LowStock {
		queryBuilder.WriteString(" AND i.quantity <= i.minquantity")
	}

	order, ok := sortClauses[filter.Sort]
	if !ok {
		order = sortClauses[SortName]
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", order, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_items")
	}
	defer rows.Close()

	items := make([]*Item, 0)
	var total int
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(append(itemDestinations(item), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_item")
		}
		items = append(items, item)
	}

	return items, total, dberr.Wrap(rows.Err(), "iterate_items")
}

// FindByID retrieves an owned item with its catalog names joined.
func (repository *PostgresRepository) FindByID(context context.Context, ownerID, id string) (*Item, error) {
	query := itemSelect + itemJoins + ` WHERE i.id = $1 AND i.userid = $2`

	item := &Item{}
	if err := repository.db.QueryRow(context, query, id, ownerID).Scan(itemDestinations(item)...); err != nil {
		return nil, dberr.Wrap(err, "get_item")
	}
	return item, nil
}

// # Item Mutation

/*
Create inserts a new item and its opening movement in one transaction.

Parameters:
  - context: context.Context
  - ownerID: string
  - item: *Item
  - initial: *History (optional)

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, ownerID string, item *Item, initial *History) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_item_tx")
	}
	defer transaction.Rollback(context)

	const query = `
		INSERT INTO inventory.item (
			id, userid, name, description, quantity, minquantity,
			unitid, categoryid, locationid, expiresat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING createdat, updatedat`

	err = transaction.QueryRow(context, query,
		item.ID, ownerID, item.Name, item.Description, item.Quantity, item.MinQuantity,
		item.UnitID, item.CategoryID, item.LocationID, item.ExpiresAt,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_item")
	}

	if initial != nil {
		if err := insertHistory(context, transaction, initial); err != nil {
			return err
		}
	}

	return transaction.Commit(context)
}

/*
Update rewrites an item's fields while its row is locked.

Description: Executes a multi-step transaction:
 1. Lock the row and read the current quantity.
 2. Ask record for the movement that explains any quantity change.
 3. Write the new fields.
 4. Store the movement, if any.

Returns:
  - error: dberr.ErrNotFound, the Mutation's error, or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, ownerID string, item *Item, record Mutation) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_item_tx")
	}
	defer transaction.Rollback(context)

	current, err := lockQuantity(context, transaction, ownerID, item.ID)
	if err != nil {
		return err
	}

	movement, err := record(current)
	if err != nil {
		return err
	}

	const query = `
		UPDATE inventory.item
		SET name = $3, description = $4, quantity = $5, minquantity = $6,
		    unitid = $7, categoryid = $8, locationid = $9, expiresat = $10, updatedat = NOW()
		WHERE id = $1 AND userid = $2
		RETURNING createdat, updatedat`

	err = transaction.QueryRow(context, query,
		item.ID, ownerID, item.Name, item.Description, item.Quantity, item.MinQuantity,
		item.UnitID, item.CategoryID, item.LocationID, item.ExpiresAt,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_item")
	}

	if movement != nil {
		if err := insertHistory(context, transaction, movement); err != nil {
			return err
		}
	}

	return transaction.Commit(context)
}

/*
Move applies one stock movement under a row lock.

Returns:
  - *History: Stored movement with its timestamp
  - error: dberr.ErrNotFound, the Mutation's error, or persistence failures
*/
func (repository *PostgresRepository) Move(context context.Context, ownerID, itemID string, record Mutation) (*History, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_move_item_tx")
	}
	defer transaction.Rollback(context)

	current, err := lockQuantity(context, transaction, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	movement, err := record(current)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, fmt.Errorf("move_item: mutation recorded no movement")
	}

	const query = `UPDATE inventory.item SET quantity = $3, updatedat = NOW() WHERE id = $1 AND userid = $2`
	if _, err := transaction.Exec(context, query, itemID, ownerID, movement.QuantityAfter); err != nil {
		return nil, dberr.Wrap(err, "move_item")
	}

	if err := insertHistory(context, transaction, movement); err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_move_item_tx")
	}
	return movement, nil
}

/*
Delete hard-deletes an owned item. History rows go with it by cascade.

Returns:
  - error: dberr.ErrNotFound when nothing matched
*/
func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	const query = `DELETE FROM inventory.item WHERE id = $1 AND userid = $2`

	result, err := repository.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_item")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # History

// History lists an owned item's movements, newest first.
func (repository *PostgresRepository) History(context context.Context, ownerID, itemID string, limit, offset int) ([]*History, int, error) {
	query := `
		SELECT ` + prefixed("h", schema.InventoryItemHistory.Columns()) + `, COUNT(*) OVER() AS total
		FROM inventory.itemhistory h
		JOIN inventory.item i ON i.id = h.itemid
		WHERE h.itemid = $1 AND i.userid = $2
		ORDER BY h.createdat DESC, h.id DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.db.Query(context, query, itemID, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_item_history")
	}
	defer rows.Close()

	entries := make([]*History, 0)
	var total int
	for rows.Next() {
		entry := &History{}
		err := rows.Scan(
			&entry.ID, &entry.ItemID, &entry.UserID, &entry.Change, &entry.QuantityAfter,
			&entry.Reason, &entry.Note, &entry.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_item_history")
		}
		entries = append(entries, entry)
	}

	return entries, total, dberr.Wrap(rows.Err(), "iterate_item_history")
}

// # Reference Checks

/*
MissingReferences reports which of the given catalog references the owner
does not have. Nil references are skipped.

Returns:
  - []string: Field identifiers of unknown references
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) MissingReferences(context context.Context, ownerID string, references References) ([]string, error) {
	const query = `
		SELECT
			$2::uuid IS NULL OR EXISTS (SELECT 1 FROM inventory.unit WHERE id = $2 AND userid = $1),
			$3::uuid IS NULL OR EXISTS (SELECT 1 FROM inventory.category WHERE id = $3 AND userid = $1),
			$4::uuid IS NULL OR EXISTS (SELECT 1 FROM inventory.location WHERE id = $4 AND userid = $1)`

	var unitFound, categoryFound, locationFound bool
	err := repository.db.QueryRow(context, query,
		ownerID, references.UnitID, references.CategoryID, references.LocationID,
	).Scan(&unitFound, &categoryFound, &locationFound)
	if err != nil {
		return nil, dberr.Wrap(err, "check_item_references")
	}

	var missing []string
	if !unitFound {
		missing = append(missing, FieldUnitID)
	}
	if !categoryFound {
		missing = append(missing, FieldCategoryID)
	}
	if !locationFound {
		missing = append(missing, FieldLocationID)
	}
	return missing, nil
}

// # Helpers

func itemDestinations(item *Item) []any {
	return []any{
		&item.ID, &item.Name, &item.Description, &item.Quantity, &item.MinQuantity,
		&item.UnitID, &item.CategoryID, &item.LocationID, &item.ExpiresAt, &item.CreatedAt, &item.UpdatedAt,
		&item.UnitAbbreviation, &item.CategoryName, &item.LocationName,
	}
}

func lockQuantity(context context.Context, transaction pgx.Tx, ownerID, itemID string) (int, error) {
	const query = `SELECT quantity FROM inventory.item WHERE id = $1 AND userid = $2 FOR UPDATE`

	var quantity int
	if err := transaction.QueryRow(context, query, itemID, ownerID).Scan(&quantity); err != nil {
		return 0, dberr.Wrap(err, "lock_item")
	}
	return quantity, nil
}

func insertHistory(context context.Context, transaction pgx.Tx, movement *History) error {
	query := `
		INSERT INTO inventory.itemhistory (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING createdat`

	err := transaction.QueryRow(context, query,
		movement.ID, movement.ItemID, movement.UserID, movement.Change,
		movement.QuantityAfter, string(movement.Reason), movement.Note,
	).Scan(&movement.CreatedAt)
	return dberr.Wrap(err, "insert_item_history")
}

// escapeLike neutralizes LIKE wildcards so a search matches literally.
func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func prefixed(alias string, columns []string) string {
	qualified := make([]string, len(columns))
	for index, column := range columns {
		qualified[index] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
