// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/pkg/slug"
	"github.com/taibuivan/hms/pkg/uuid"
)

// # Service Layer

// Service orchestrates catalog rules: validation, slugs and ownership.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new catalog [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Entries

// ListEntries returns the owner's categories or locations.
func (service *Service) ListEntries(context context.Context, collection Collection, ownerID string) ([]*Entry, error) {
	entries, err := service.repo.ListEntries(context, collection, ownerID)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_list_entries: %w", err)
	}
	return entries, nil
}

/*
GetEntry retrieves one of the owner's entries.

Parameters:
  - context: context.Context
  - collection: Collection
  - ownerID: string
  - id: string

Returns:
  - *Entry: Hydrated entity
  - error: not_found when missing, malformed or owned by someone else
*/
func (service *Service) GetEntry(context context.Context, collection Collection, ownerID, id string) (*Entry, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(collection.Resource())
	}

	entry, err := service.repo.FindEntry(context, collection, ownerID, id)
	if err != nil {
		return nil, service.storageError(err, collection.Resource(), "catalog_service_get_entry")
	}
	return entry, nil
}

/*
CreateEntry validates the form and stores a new entry with a generated slug.

Parameters:
  - context: context.Context
  - collection: Collection
  - ownerID: string
  - form: EntryForm

Returns:
  - *Entry: Created entity
  - error: validation (including a duplicate name) or internal failures
*/
func (service *Service) CreateEntry(context context.Context, collection Collection, ownerID string, form EntryForm) (*Entry, error) {
	input, err := form.Validate()
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
	}

	if err := service.repo.CreateEntry(context, collection, ownerID, entry); err != nil {
		return nil, service.storageError(err, collection.Resource(), "catalog_service_create_entry")
	}

	service.logger.Info("catalog_entry_created",
		slog.String("collection", string(collection)),
		slog.String("entry_id", entry.ID),
	)

	return entry, nil
}

// UpdateEntry replaces an entry's name and description. The slug follows the name.
func (service *Service) UpdateEntry(context context.Context, collection Collection, ownerID, id string, form EntryForm) (*Entry, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(collection.Resource())
	}

	input, err := form.Validate()
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:          id,
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
	}

	if err := service.repo.UpdateEntry(context, collection, ownerID, entry); err != nil {
		return nil, service.storageError(err, collection.Resource(), "catalog_service_update_entry")
	}
	return entry, nil
}

// DeleteEntry removes an entry. Items filed under it lose the reference.
func (service *Service) DeleteEntry(context context.Context, collection Collection, ownerID, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(collection.Resource())
	}

	if err := service.repo.DeleteEntry(context, collection, ownerID, id); err != nil {
		return service.storageError(err, collection.Resource(), "catalog_service_delete_entry")
	}

	service.logger.Info("catalog_entry_deleted",
		slog.String("collection", string(collection)),
		slog.String("entry_id", id),
	)
	return nil
}

// # Units

func (service *Service) ListUnits(context context.Context, ownerID string) ([]*Unit, error) {
	units, err := service.repo.ListUnits(context, ownerID)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_list_units: %w", err)
	}
	return units, nil
}

func (service *Service) GetUnit(context context.Context, ownerID, id string) (*Unit, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceUnit)
	}

	unit, err := service.repo.FindUnit(context, ownerID, id)
	if err != nil {
		return nil, service.storageError(err, resourceUnit, "catalog_service_get_unit")
	}
	return unit, nil
}

func (service *Service) CreateUnit(context context.Context, ownerID string, form UnitForm) (*Unit, error) {
	input, err := form.Validate()
	if err != nil {
		return nil, err
	}

	unit := &Unit{ID: uuid.New(), Name: input.Name, Abbreviation: input.Abbreviation}
	if err := service.repo.CreateUnit(context, ownerID, unit); err != nil {
		return nil, service.storageError(err, resourceUnit, "catalog_service_create_unit")
	}

	service.logger.Info("unit_created", slog.String("unit_id", unit.ID))
	return unit, nil
}

func (service *Service) UpdateUnit(context context.Context, ownerID, id string, form UnitForm) (*Unit, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceUnit)
	}

	input, err := form.Validate()
	if err != nil {
		return nil, err
	}

	unit := &Unit{ID: id, Name: input.Name, Abbreviation: input.Abbreviation}
	if err := service.repo.UpdateUnit(context, ownerID, unit); err != nil {
		return nil, service.storageError(err, resourceUnit, "catalog_service_update_unit")
	}
	return unit, nil
}

func (service *Service) DeleteUnit(context context.Context, ownerID, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceUnit)
	}

	if err := service.repo.DeleteUnit(context, ownerID, id); err != nil {
		return service.storageError(err, resourceUnit, "catalog_service_delete_unit")
	}
	return nil
}

const resourceUnit = "Unit"

// storageError turns the repository's sentinel errors into client errors.
// A duplicate name is reported on the name field so forms can show it inline.
func (service *Service) storageError(err error, resource, tag string) error {
	switch {
	case dberr.IsNotFound(err):
		return apperr.NotFound(resource)
	case dberr.IsConflict(err):
		return apperr.FieldError(FieldName, fmt.Sprintf(MsgNameTaken, strings.ToLower(resource)))
	}
	return fmt.Errorf("%s: %w", tag, err)
}
