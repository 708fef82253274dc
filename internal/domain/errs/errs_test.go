package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsKeepTheirSentinel(t *testing.T) {
	err := NotFound("item %q not found", "bag")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, `item "bag" not found`, err.Error())

	wrapped := fmt.Errorf("update: %w", InvalidArgument("quantity cannot be negative"))
	assert.ErrorIs(t, wrapped, ErrInvalidArgument)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
}

func TestPublic(t *testing.T) {
	assert.Equal(t, "Quantity cannot be negative", Public(InvalidArgument("quantity cannot be negative")))
	assert.Equal(t, `Employee ID "E1" already exists`,
		Public(fmt.Errorf("create: %w", AlreadyExists("employee ID %q already exists", "E1"))))
	assert.Equal(t, "Склад недоступен", Public(errors.New("склад недоступен")))
	assert.Equal(t, "", Public(errors.New("")))
}
