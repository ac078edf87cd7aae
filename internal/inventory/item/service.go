// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/internal/platform/validate"
	"github.com/taibuivan/hms/pkg/pagination"
	"github.com/taibuivan/hms/pkg/uuid"
)

const resourceItem = "Item"

var sorts = []string{string(SortName), string(SortQuantity), string(SortUpdated), string(SortExpires)}

// # Service Layer

// Service orchestrates stock rules: validation, catalog references and
// movement bookkeeping.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a [Service].
type Option func(*Service)

// WithClock overrides the clock used to validate expiry dates. Tests only.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a new item [Service].
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Discovery

/*
List returns one page of the owner's items.

Parameters:
  - context: context.Context
  - ownerID: string
  - filter: Filter (empty Sort means by name)
  - params: pagination.Params

Returns:
  - []*Item: Page of items
  - int: Total matching items
  - error: validation for a bad sort or filter ID, internal otherwise
*/
func (service *Service) List(context context.Context, ownerID string, filter Filter, params pagination.Params) ([]*Item, int, error) {
	if filter.Sort == "" {
		filter.Sort = SortName
	}

	validator := validate.New()
	validator.OneOf("sort", string(filter.Sort), sorts)
	validator.Custom(FieldCategoryID, filter.CategoryID != "" && !uuid.Valid(filter.CategoryID), MsgUnknownReference)
	validator.Custom(FieldLocationID, filter.LocationID != "" && !uuid.Valid(filter.LocationID), MsgUnknownReference)
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	items, total, err := service.repo.List(context, ownerID, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("item_service_list: %w", err)
	}
	return items, total, nil
}

// Get retrieves one of the owner's items.
func (service *Service) Get(context context.Context, ownerID, id string) (*Item, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceItem)
	}

	item, err := service.repo.FindByID(context, ownerID, id)
	if err != nil {
		return nil, storageError(err, "item_service_get")
	}
	return item, nil
}

// # Mutation

/*
Create validates the form and stores a new item.

Description: A positive opening quantity is recorded as an "in" movement so
the history always adds up to the current quantity.

Parameters:
  - context: context.Context
  - ownerID: string
  - form: ItemForm

Returns:
  - *Item: Created item with catalog names joined
  - error: validation (including unknown references) or internal failures
*/
func (service *Service) Create(context context.Context, ownerID string, form ItemForm) (*Item, error) {
	input, err := form.Validate(service.now())
	if err != nil {
		return nil, err
	}

	if err := service.checkReferences(context, ownerID, input.References); err != nil {
		return nil, err
	}

	item := input.apply(&Item{ID: uuid.New()})

	var initial *History
	if item.Quantity > 0 {
		initial = &History{
			ID:            uuid.New(),
			ItemID:        item.ID,
			UserID:        ownerID,
			Change:        item.Quantity,
			QuantityAfter: item.Quantity,
			Reason:        ReasonIn,
		}
	}

	if err := service.repo.Create(context, ownerID, item, initial); err != nil {
		return nil, storageError(err, "item_service_create")
	}

	service.logger.Info("item_created",
		slog.String("item_id", item.ID),
		slog.Int("quantity", item.Quantity),
	)

	return service.Get(context, ownerID, item.ID)
}

/*
Update replaces an item's fields.

Description: When the submitted quantity differs from the stored one, the
difference is recorded as an "adjust" movement in the same transaction.

Returns:
  - *Item: Updated item with catalog names joined
  - error: not_found, validation or internal failures
*/
func (service *Service) Update(context context.Context, ownerID, id string, form ItemForm) (*Item, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceItem)
	}

	input, err := form.Validate(service.now())
	if err != nil {
		return nil, err
	}

	if err := service.checkReferences(context, ownerID, input.References); err != nil {
		return nil, err
	}

	item := input.apply(&Item{ID: id})

	record := func(previous int) (*History, error) {
		if previous == item.Quantity {
			return nil, nil
		}
		return &History{
			ID:            uuid.New(),
			ItemID:        id,
			UserID:        ownerID,
			Change:        item.Quantity - previous,
			QuantityAfter: item.Quantity,
			Reason:        ReasonAdjust,
		}, nil
	}

	if err := service.repo.Update(context, ownerID, item, record); err != nil {
		return nil, storageError(err, "item_service_update")
	}

	return service.Get(context, ownerID, id)
}

// Delete removes an item together with its history.
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceItem)
	}

	if err := service.repo.Delete(context, ownerID, id); err != nil {
		return storageError(err, "item_service_delete")
	}

	service.logger.Info("item_deleted", slog.String("item_id", id))
	return nil
}

// # Stock Movements

/*
Move records a stock movement and applies it to the item.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string
  - form: MoveForm

Returns:
  - *Item: Item after the movement
  - *History: Recorded movement
  - error: validation (MsgNotEnoughStock when "out" would go below zero),
    not_found or internal failures
*/
func (service *Service) Move(context context.Context, ownerID, id string, form MoveForm) (*Item, *History, error) {
	if !uuid.Valid(id) {
		return nil, nil, apperr.NotFound(resourceItem)
	}

	input, err := form.Validate()
	if err != nil {
		return nil, nil, err
	}

	record := func(current int) (*History, error) {
		next := input.Reason.Apply(current, input.Amount)
		switch {
		case next < 0:
			return nil, apperr.FieldError(FieldQuantity, MsgNotEnoughStock)
		case next > MaxQuantity:
			return nil, apperr.FieldError(FieldQuantity, fmt.Sprintf("Must be at most %d", MaxQuantity))
		}

		return &History{
			ID:            uuid.New(),
			ItemID:        id,
			UserID:        ownerID,
			Change:        next - current,
			QuantityAfter: next,
			Reason:        input.Reason,
			Note:          input.Note,
		}, nil
	}

	movement, err := service.repo.Move(context, ownerID, id, record)
	if err != nil {
		return nil, nil, storageError(err, "item_service_move")
	}

	service.logger.Info("stock_moved",
		slog.String("item_id", id),
		slog.String("reason", string(movement.Reason)),
		slog.Int("change", movement.Change),
	)

	item, err := service.Get(context, ownerID, id)
	if err != nil {
		return nil, nil, err
	}
	return item, movement, nil
}

// History returns one page of an item's movements, newest first.
func (service *Service) History(context context.Context, ownerID, id string, params pagination.Params) ([]*History, int, error) {
	if _, err := service.Get(context, ownerID, id); err != nil {
		return nil, 0, err
	}

	entries, total, err := service.repo.History(context, ownerID, id, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("item_service_history: %w", err)
	}
	return entries, total, nil
}

// # Helpers

// checkReferences rejects catalog IDs the owner does not have.
func (service *Service) checkReferences(context context.Context, ownerID string, references References) error {
	if references.UnitID == nil && references.CategoryID == nil && references.LocationID == nil {
		return nil
	}

	missing, err := service.repo.MissingReferences(context, ownerID, references)
	if err != nil {
		return fmt.Errorf("item_service_check_references: %w", err)
	}
	if len(missing) == 0 {
		return nil
	}

	fields := apperr.FieldErrors{}
	for _, field := range missing {
		fields.Add(field, MsgUnknownReference)
	}
	return apperr.Validation(fields)
}

// apply copies the validated values onto item.
func (input ItemInput) apply(item *Item) *Item {
	item.Name = input.Name
	item.Description = input.Description
	item.Quantity = input.Quantity
	item.MinQuantity = input.MinQuantity
	item.UnitID = input.References.UnitID
	item.CategoryID = input.References.CategoryID
	item.LocationID = input.References.LocationID
	item.ExpiresAt = input.ExpiresAt
	return item
}

// storageError maps a missing row to 404 and lets validation failures raised
// inside a transaction through unchanged.
func storageError(err error, tag string) error {
	if dberr.IsNotFound(err) {
		return apperr.NotFound(resourceItem)
	}
	if apperr.IsKind(err, apperr.KindValidation) {
		return err
	}
	return fmt.Errorf("%s: %w", tag, err)
}
