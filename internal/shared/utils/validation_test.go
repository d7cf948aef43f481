package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/shared/errors"
)

type sampleInput struct {
	RoomNumber string `json:"room_number" validate:"required,max=5"`
	Floor      *int   `json:"floor" validate:"required"`
	Credit     *int   `json:"credit" validate:"omitempty,gte=0"`
}

func TestValidateStruct(t *testing.T) {
	floor, negative := 1, -4

	require.NoError(t, ValidateStruct(sampleInput{RoomNumber: "101", Floor: &floor}))

	err := ValidateStruct(sampleInput{RoomNumber: "1010101", Credit: &negative})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "room_number must be at most 5 characters long")
	assert.Contains(t, appErr.Details, "floor is required")
	assert.Contains(t, appErr.Details, "credit must be greater than or equal to 0")
}

func TestValidateStruct_NotAStruct(t *testing.T) {
	err := ValidateStruct(42)
	assert.True(t, errors.IsValidationError(err))
}
