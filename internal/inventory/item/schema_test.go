// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/pkg/uuid"
)

/*
TestItemForm_Validate covers the normalized output of a valid item form.
*/
func TestItemForm_Validate(t *testing.T) {
	unitID := uuid.New()

	input, err := ItemForm{
		Name:        "  Whole milk ",
		Description: "   ",
		Quantity:    "3",
		UnitID:      unitID,
		ExpiresAt:   "2026-03-10",
	}.Validate(fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Whole milk", input.Name)
	assert.Nil(t, input.Description)
	assert.Equal(t, 3, input.Quantity)
	assert.Equal(t, 0, input.MinQuantity)
	require.NotNil(t, input.References.UnitID)
	assert.Equal(t, unitID, *input.References.UnitID)
	assert.Nil(t, input.References.CategoryID)
	require.NotNil(t, input.ExpiresAt)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *input.ExpiresAt)
}

/*
TestItemForm_ValidateErrors maps each bad input onto its field message.
*/
func TestItemForm_ValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		form    ItemForm
		field   string
		message string
	}{
		{"missing_name", ItemForm{Name: " "}, FieldName, MsgNameRequired},
		{"fractional_quantity", ItemForm{Name: "Rice", Quantity: "2.5"}, FieldQuantity, MsgQuantityInteger},
		{"negative_quantity", ItemForm{Name: "Rice", Quantity: "-1"}, FieldQuantity, "Must be between 0 and 1000000"},
		{"negative_threshold", ItemForm{Name: "Rice", MinQuantity: "-4"}, FieldMinQuantity, "Must be between 0 and 1000000"},
		{"malformed_reference", ItemForm{Name: "Rice", CategoryID: "pantry"}, FieldCategoryID, MsgUnknownReference},
		{"past_expiry", ItemForm{Name: "Rice", ExpiresAt: "2026-02-01"}, FieldExpiresAt, MsgExpiryInFuture},
		{"unparseable_expiry", ItemForm{Name: "Rice", ExpiresAt: "soon"}, FieldExpiresAt, "Must be a valid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Validate(fixedNow)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.KindValidation, appError.Kind)
			assert.Equal(t, []string{tt.message}, appError.Fields[tt.field])
		})
	}
}

/*
TestMoveForm_Validate covers reasons, minimum amounts and the optional note.
*/
func TestMoveForm_Validate(t *testing.T) {
	input, err := MoveForm{Reason: "out", Quantity: "2", Note: " breakfast "}.Validate()
	require.NoError(t, err)
	assert.Equal(t, MoveInput{Reason: ReasonOut, Amount: 2, Note: input.Note}, input)
	require.NotNil(t, input.Note)
	assert.Equal(t, "breakfast", *input.Note)

	input, err = MoveForm{Reason: "adjust", Quantity: "0"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, 0, input.Amount)
	assert.Nil(t, input.Note)

	tests := []struct {
		name    string
		form    MoveForm
		field   string
		message string
	}{
		{"missing_reason", MoveForm{Quantity: "1"}, FieldReason, MsgReasonInvalid},
		{"unknown_reason", MoveForm{Reason: "borrow", Quantity: "1"}, FieldReason, MsgReasonInvalid},
		{"missing_amount", MoveForm{Reason: "in"}, FieldQuantity, "This field is required"},
		{"zero_in", MoveForm{Reason: "in", Quantity: "0"}, FieldQuantity, "Must be between 1 and 1000000"},
		{"not_a_number", MoveForm{Reason: "out", Quantity: "a few"}, FieldQuantity, MsgQuantityInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Validate()

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, []string{tt.message}, appError.Fields[tt.field])
		})
	}
}

/*
TestReason_Apply checks the arithmetic of each movement reason.
*/
func TestReason_Apply(t *testing.T) {
	assert.Equal(t, 7, ReasonIn.Apply(5, 2))
	assert.Equal(t, 3, ReasonOut.Apply(5, 2))
	assert.Equal(t, -1, ReasonOut.Apply(1, 2))
	assert.Equal(t, 2, ReasonAdjust.Apply(5, 2))
}
