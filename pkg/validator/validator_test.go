package validator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string    `json:"name" validate:"required,max=5"`
	Price float64   `json:"price" validate:"gte=0,lte=999999.99"`
	Ref   uuid.UUID `json:"ref" validate:"uuid_required"`
}

func TestDescribe(t *testing.T) {
	err := Struct(sample{Name: "toolong", Price: -1})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	msg := Describe(err)
	assert.Contains(t, msg, "name cannot exceed 5 characters")
	assert.Contains(t, msg, "price must be greater than or equal to 0")
	assert.Contains(t, msg, "ref is required")
}

func TestErrors(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "ok", Price: 1, Ref: uuid.New()}))

	err := Struct(sample{Name: "", Price: 1000000, Ref: uuid.New()})
	errs := Errors(fmt.Errorf("create sample: %w", err))
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].FailedField)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "price", errs[1].FailedField)
	assert.Equal(t, "lte", errs[1].Tag)
	assert.Equal(t, "999999.99", errs[1].Value)
	assert.Equal(t, "must be less than or equal to 999999.99", errs[1].Message)
}

func TestDescribePlainError(t *testing.T) {
	assert.Equal(t, "boom", Describe(errors.New("boom")))
	assert.False(t, IsValidationError(errors.New("boom")))
	assert.Nil(t, Errors(errors.New("boom")))
}
