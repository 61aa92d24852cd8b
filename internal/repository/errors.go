package repository

import (
	"errors"

	"go-inventory-catalog/internal/apperr"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = apperr.NotFound("CATEGORY_NOT_FOUND", "Category not found")
	ErrCategoryExists    = apperr.Conflict("CATEGORY_EXISTS", "Category with this name already exists")
	ErrProductNotFound   = apperr.NotFound("PRODUCT_NOT_FOUND", "Product not found")
	ErrProductExists     = apperr.Conflict("PRODUCT_EXISTS", "Product with this name already exists")
	ErrInventoryNotFound = apperr.NotFound("INVENTORY_NOT_FOUND", "Inventory not found")
	ErrInventoryExists   = apperr.Conflict("INVENTORY_EXISTS", "Inventory already exists for this product")
	ErrUserNotFound      = apperr.NotFound("USER_NOT_FOUND", "User not found")
	ErrEmailExists       = apperr.Conflict("EMAIL_EXISTS", "Email already exists")
)

// translate maps gorm errors onto the entity's not-found and conflict errors.
// Validation errors raised by model hooks already carry their kind and pass through.
func translate(err error, notFound, conflict *apperr.Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound.Wrap(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict.Wrap(err)
	default:
		return err
	}
}
