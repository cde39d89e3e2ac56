package validator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/seat-inventory/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatSelectionRequestValidation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name        string
		input       api.SeatSelectionRequest
		wantMessage string
	}{
		{
			name:  "valid selection",
			input: api.SeatSelectionRequest{SeatIds: []string{"A1", "A2", "B-10"}},
		},
		{
			name:        "missing seat ids",
			input:       api.SeatSelectionRequest{},
			wantMessage: ErrRequired,
		},
		{
			name:        "empty seat ids",
			input:       api.SeatSelectionRequest{SeatIds: []string{}},
			wantMessage: fmt.Sprintf(ErrMinLength, "1"),
		},
		{
			name:        "duplicate seat ids",
			input:       api.SeatSelectionRequest{SeatIds: []string{"A1", "A1"}},
			wantMessage: ErrUnique,
		},
		{
			name:        "malformed seat id",
			input:       api.SeatSelectionRequest{SeatIds: []string{"A1", "A 2"}},
			wantMessage: ErrInvalidSeatID,
		},
		{
			name:        "too long seat id",
			input:       api.SeatSelectionRequest{SeatIds: []string{"ABCDEFGHIJKLMNOPQ"}},
			wantMessage: ErrInvalidSeatID,
		},
		{
			name: "hold timeout above maximum",
			input: api.SeatSelectionRequest{
				SeatIds:            []string{"A1"},
				HoldTimeoutSeconds: ptr(901),
			},
			wantMessage: fmt.Sprintf(ErrMaxValue, "900"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)

			if tt.wantMessage == "" {
				assert.NoError(t, err)
				return
			}

			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs), "expected validation errors, got %v", err)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantMessage, ValidationMessage(errs[0]))
		})
	}
}

func TestBulkCancelRequestValidation(t *testing.T) {
	v := NewValidator()

	err := v.Struct(api.BulkCancelRequest{BookingIds: make([]string, 101)})

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, fmt.Sprintf(ErrMaxLength, "100"), ValidationMessage(errs[0]))
}

func ptr[T any](v T) *T {
	return &v
}
