// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"regexp"
	"strings"

	"github.com/taibuivan/hms/internal/platform/validate"
	"github.com/taibuivan/hms/pkg/pointer"
)

var abbreviationPattern = regexp.MustCompile(`^[A-Za-z.]{1,10}$`)

// EntryForm is the body of a category or location create/update.
type EntryForm struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

// EntryInput is a validated [EntryForm].
type EntryInput struct {
	Name        string
	Description *string
}

// Validate trims the form and applies the name and description rules.
func (form EntryForm) Validate() (EntryInput, error) {
	name := strings.TrimSpace(form.Name)
	description := strings.TrimSpace(form.Description)

	validator := validate.New()
	nameSchema(validator, name)
	validator.MaxLen(FieldDescription, description, MaxDescriptionLength)

	if err := validator.Err(); err != nil {
		return EntryInput{}, err
	}

	input := EntryInput{Name: name}
	if description != "" {
		input.Description = pointer.To(description)
	}
	return input, nil
}

// UnitForm is the body of a unit create/update.
type UnitForm struct {
	Name         string `form:"name" json:"name"`
	Abbreviation string `form:"abbreviation" json:"abbreviation"`
}

// UnitInput is a validated [UnitForm].
type UnitInput struct {
	Name         string
	Abbreviation string
}

// Validate trims the form and applies the name and abbreviation rules.
func (form UnitForm) Validate() (UnitInput, error) {
	name := strings.TrimSpace(form.Name)
	abbreviation := strings.TrimSpace(form.Abbreviation)

	validator := validate.New()
	nameSchema(validator, name)
	validator.
		Required(FieldAbbreviation, abbreviation, MsgAbbreviationRequired).
		Pattern(FieldAbbreviation, abbreviation, abbreviationPattern, MsgAbbreviationFormat)

	if err := validator.Err(); err != nil {
		return UnitInput{}, err
	}
	return UnitInput{Name: name, Abbreviation: abbreviation}, nil
}

func nameSchema(validator *validate.Validator, name string) {
	validator.
		Required(FieldName, name, MsgNameRequired).
		MaxLen(FieldName, name, MaxNameLength)
}
