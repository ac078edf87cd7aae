// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/hms/internal/platform/validate"
	"github.com/taibuivan/hms/pkg/uuid"
)

// # Raw Forms
//
// Quantities are [json.Number] so JSON bodies may send 3 or "3" and HTML
// forms decode into the same field.

// ItemForm is the body of an item create or update.
type ItemForm struct {
	Name        string      `form:"name" json:"name"`
	Description string      `form:"description" json:"description"`
	Quantity    json.Number `form:"quantity" json:"quantity"`
	MinQuantity json.Number `form:"minQuantity" json:"minQuantity"`
	UnitID      string      `form:"unitId" json:"unitId"`
	CategoryID  string      `form:"categoryId" json:"categoryId"`
	LocationID  string      `form:"locationId" json:"locationId"`
	ExpiresAt   string      `form:"expiresAt" json:"expiresAt"`
}

// ItemInput is a validated [ItemForm].
type ItemInput struct {
	Name        string
	Description *string
	Quantity    int
	MinQuantity int
	References  References
	ExpiresAt   *time.Time
}

// Validate checks the form against the clock now and returns typed values.
// Empty quantities count as zero.
func (form ItemForm) Validate(now time.Time) (ItemInput, error) {
	name := strings.TrimSpace(form.Name)
	description := strings.TrimSpace(form.Description)

	validator := validate.New().WithClock(func() time.Time { return now })
	validator.
		Required(FieldName, name, MsgNameRequired).
		MaxLen(FieldName, name, MaxNameLength).
		MaxLen(FieldDescription, description, MaxDescriptionLength)

	quantity := quantitySchema(validator, FieldQuantity, string(form.Quantity), 0)
	minQuantity := quantitySchema(validator, FieldMinQuantity, string(form.MinQuantity), 0)

	references := References{
		UnitID:     referenceSchema(validator, FieldUnitID, form.UnitID),
		CategoryID: referenceSchema(validator, FieldCategoryID, form.CategoryID),
		LocationID: referenceSchema(validator, FieldLocationID, form.LocationID),
	}

	validator.Future(FieldExpiresAt, form.ExpiresAt, MsgExpiryInFuture)

	if err := validator.Err(); err != nil {
		return ItemInput{}, err
	}

	input := ItemInput{
		Name:        name,
		Quantity:    quantity,
		MinQuantity: minQuantity,
		References:  references,
	}
	if description != "" {
		input.Description = &description
	}
	if strings.TrimSpace(form.ExpiresAt) != "" {
		expiresAt, _ := validate.ParseDate(form.ExpiresAt)
		expiresAt = expiresAt.UTC()
		input.ExpiresAt = &expiresAt
	}
	return input, nil
}

// MoveForm is the body of POST /items/{id}/moves.
type MoveForm struct {
	Reason   string      `form:"reason" json:"reason"`
	Quantity json.Number `form:"quantity" json:"quantity"`
	Note     string      `form:"note" json:"note"`
}

// MoveInput is a validated [MoveForm].
type MoveInput struct {
	Reason Reason
	Amount int
	Note   *string
}

// Validate checks the reason and amount. "in" and "out" move at least one
// unit; "adjust" may set zero.
func (form MoveForm) Validate() (MoveInput, error) {
	reason := strings.TrimSpace(form.Reason)
	note := strings.TrimSpace(form.Note)

	validator := validate.New()
	validator.
		Required(FieldReason, reason, MsgReasonInvalid).
		OneOf(FieldReason, reason, Reasons, MsgReasonInvalid).
		Required(FieldQuantity, string(form.Quantity)).
		MaxLen(FieldNote, note, MaxNoteLength)

	minimum := 1
	if Reason(reason) == ReasonAdjust {
		minimum = 0
	}
	amount := quantitySchema(validator, FieldQuantity, string(form.Quantity), minimum)

	if err := validator.Err(); err != nil {
		return MoveInput{}, err
	}

	input := MoveInput{Reason: Reason(reason), Amount: amount}
	if note != "" {
		input.Note = &note
	}
	return input, nil
}

// # Field Schemas

// quantitySchema: whole number, then [minimum, MaxQuantity].
func quantitySchema(validator *validate.Validator, field, raw string, minimum int) int {
	raw = strings.TrimSpace(raw)
	validator.Integer(field, raw, MsgQuantityInteger)
	if raw == "" || validator.Errors().Has(field) {
		return 0
	}

	value, _ := strconv.Atoi(raw)
	validator.IntRange(field, value, minimum, MaxQuantity)
	return value
}

// referenceSchema: empty means "none", anything else must look like an ID.
func referenceSchema(validator *validate.Validator, field, raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	validator.Custom(field, !uuid.Valid(raw), MsgUnknownReference)
	return &raw
}
