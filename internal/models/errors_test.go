package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("update worker: %w", ValidationErrorf("no data to update"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "no data to update", verr.Msg)
}

func TestStoreErrorWrapsOnce(t *testing.T) {
	err := storeError("find", errors.New("connection refused"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, err, storeError("again", err))
}
