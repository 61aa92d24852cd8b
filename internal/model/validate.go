package model

import (
	"go-inventory-catalog/internal/apperr"
	"go-inventory-catalog/pkg/validator"
)

// check runs the struct validator and converts failures into a validation
// error so callers can tell them apart from storage failures.
func check(v interface{}) error {
	if err := validator.Struct(v); err != nil {
		return apperr.Validation(validator.Describe(err)).Wrap(err)
	}
	return nil
}
