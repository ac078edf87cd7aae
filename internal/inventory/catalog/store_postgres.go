// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hms/internal/platform/database/schema"
	"github.com/taibuivan/hms/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalog store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// tableFor maps a collection onto its table. Unknown collections never reach SQL.
func tableFor(collection Collection) (schema.InventoryEntryTable, error) {
	switch collection {
	case CollectionCategories:
		return schema.InventoryCategory, nil
	case CollectionLocations:
		return schema.InventoryLocation, nil
	}
	return schema.InventoryEntryTable{}, fmt.Errorf("catalog: unknown collection %q", collection)
}

// # Entry Retrieval

/*
ListEntries returns every entry of the owner ordered by name.

Parameters:
  - context: context.Context
  - collection: Collection
  - ownerID: string

Returns:
  - []*Entry: Possibly empty list
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListEntries(context context.Context, collection Collection, ownerID string) ([]*Entry, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(table.Columns(), ", "), table.Table, table.UserID, table.Name)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_catalog_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Slug, &entry.Description, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_catalog_entry")
		}
		entries = append(entries, entry)
	}

	return entries, dberr.Wrap(rows.Err(), "iterate_catalog_entries")
}

// FindEntry retrieves a single entry owned by ownerID.
func (repository *PostgresRepository) FindEntry(context context.Context, collection Collection, ownerID, id string) (*Entry, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		strings.Join(table.Columns(), ", "), table.Table, table.ID, table.UserID)

	entry := &Entry{}
	err = repository.db.QueryRow(context, query, id, ownerID).Scan(
		&entry.ID, &entry.Name, &entry.Slug, &entry.Description, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_catalog_entry")
	}
	return entry, nil
}

// # Entry Mutation

// CreateEntry inserts a new entry and reads back its timestamps.
func (repository *PostgresRepository) CreateEntry(context context.Context, collection Collection, ownerID string, entry *Entry) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s`,
		table.Table, table.ID, table.UserID, table.Name, table.Slug, table.Description, table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt)

	err = repository.db.QueryRow(context, query,
		entry.ID, ownerID, entry.Name, entry.Slug, entry.Description,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	return dberr.Wrap(err, "create_catalog_entry")
}

// UpdateEntry rewrites the mutable columns of an owned entry.
func (repository *PostgresRepository) UpdateEntry(context context.Context, collection Collection, ownerID string, entry *Entry) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s, %s`,
		table.Table,
		table.Name, table.Slug, table.Description, table.UpdatedAt,
		table.ID, table.UserID,
		table.CreatedAt, table.UpdatedAt)

	err = repository.db.QueryRow(context, query,
		entry.ID, ownerID, entry.Name, entry.Slug, entry.Description,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	return dberr.Wrap(err, "update_catalog_entry")
}

/*
DeleteEntry hard-deletes an owned entry.

Description: The foreign keys on inventory.item are ON DELETE SET NULL, so
items survive with the reference cleared.

Returns:
  - error: dberr.ErrNotFound when nothing matched
*/
func (repository *PostgresRepository) DeleteEntry(context context.Context, collection Collection, ownerID, id string) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.ID, table.UserID)

	result, err := repository.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_catalog_entry")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Units

var unitColumns = strings.Join(schema.InventoryUnit.Columns(), ", ")

func (repository *PostgresRepository) ListUnits(context context.Context, ownerID string) ([]*Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory.unit WHERE userid = $1 ORDER BY name ASC`

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_units")
	}
	defer rows.Close()

	units := make([]*Unit, 0)
	for rows.Next() {
		unit := &Unit{}
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.Abbreviation, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_unit")
		}
		units = append(units, unit)
	}

	return units, dberr.Wrap(rows.Err(), "iterate_units")
}

func (repository *PostgresRepository) FindUnit(context context.Context, ownerID, id string) (*Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory.unit WHERE id = $1 AND userid = $2`

	unit := &Unit{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&unit.ID, &unit.Name, &unit.Abbreviation, &unit.CreatedAt, &unit.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_unit")
	}
	return unit, nil
}

func (repository *PostgresRepository) CreateUnit(context context.Context, ownerID string, unit *Unit) error {
	const query = `
		INSERT INTO inventory.unit (id, userid, name, abbreviation, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.db.QueryRow(context, query, unit.ID, ownerID, unit.Name, unit.Abbreviation).
		Scan(&unit.CreatedAt, &unit.UpdatedAt)
	return dberr.Wrap(err, "create_unit")
}

func (repository *PostgresRepository) UpdateUnit(context context.Context, ownerID string, unit *Unit) error {
	const query = `
		UPDATE inventory.unit
		SET name = $3, abbreviation = $4, updatedat = NOW()
		WHERE id = $1 AND userid = $2
		RETURNING createdat, updatedat`

	err := repository.db.QueryRow(context, query, unit.ID, ownerID, unit.Name, unit.Abbreviation).
		Scan(&unit.CreatedAt, &unit.UpdatedAt)
	return dberr.Wrap(err, "update_unit")
}

func (repository *PostgresRepository) DeleteUnit(context context.Context, ownerID, id string) error {
	const query = `DELETE FROM inventory.unit WHERE id = $1 AND userid = $2`

	result, err := repository.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_unit")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
