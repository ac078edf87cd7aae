// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog manages the reference data items are filed under: categories,
storage locations and units of measure.

# Core Responsibility

  - Entries: Categories and locations share one shape ([Entry]) and differ
    only by the [Collection] they live in.
  - Units: [Unit] pairs a name with a short abbreviation ("Kilogram", "kg").
  - Ownership: Every row belongs to one account; all reads and writes are
    scoped to the session user.

Deleting an entry or unit leaves items in place with the reference cleared.
*/
package catalog

import "time"

// # Collections

// Collection selects which entry table an operation targets.
type Collection string

const (
	CollectionCategories Collection = "categories"
	CollectionLocations  Collection = "locations"
)

// Resource is the singular name used in user-facing messages.
func (collection Collection) Resource() string {
	if collection == CollectionLocations {
		return "Location"
	}
	return "Category"
}

// # Core Entities

// Entry is a named, slugged catalog record.
type Entry struct {
	ID          string    `json:"id"` // UUIDv7
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category groups items by kind ("Dairy", "Cleaning").
type Category = Entry

// Location is where items are kept ("Pantry", "Garage shelf").
type Location = Entry

// Unit is a unit of measure for item quantities.
type Unit struct {
	ID           string    `json:"id"` // UUIDv7
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldAbbreviation = "abbreviation"
)

// # Limits & Messages

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500

	MsgNameRequired         = "Name is required"
	MsgAbbreviationRequired = "Abbreviation is required"
	MsgAbbreviationFormat   = "Use up to 10 letters or dots"

	// MsgNameTaken is formatted with the resource name.
	MsgNameTaken = "A %s with this name already exists"
)
