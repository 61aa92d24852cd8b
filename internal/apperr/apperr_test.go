package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := NotFound("PRODUCT_NOT_FOUND", "Product not found")

	assert.Equal(t, KindNotFound, KindOf(base))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("find product: %w", base)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestWrapKeepsIdentity(t *testing.T) {
	base := Conflict("CATEGORY_EXISTS", "Category with this name already exists")
	cause := errors.New("unique violation")

	wrapped := base.Wrap(cause)

	assert.True(t, errors.Is(wrapped, base))
	assert.True(t, errors.Is(wrapped, cause))
	assert.Nil(t, base.Unwrap(), "wrapping must not mutate the predefined error")
	assert.Equal(t, "Category with this name already exists", wrapped.Msg())
}

func TestWithMsg(t *testing.T) {
	e := Validation("validation error").WithMsg("name: %s", "is required")

	assert.Equal(t, "name: is required", e.Msg())
	assert.Equal(t, KindValidation, e.Kind())
	assert.Equal(t, "validation", e.Kind().String())
}
