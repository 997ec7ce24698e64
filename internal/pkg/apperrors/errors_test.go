package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

func TestDomainErrorsMatchTheirCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category error
	}{
		{"student not found", apperrors.ErrStudentNotFound, apperrors.ErrResourceNotFound},
		{"room full", apperrors.ErrRoomFull, apperrors.ErrConflict},
		{"duplicate allocation", apperrors.ErrActiveAllocationExists, apperrors.ErrConflict},
		{"swap resolved", apperrors.ErrSwapAlreadyResolved, apperrors.ErrInvalidState},
		{"swap stale", apperrors.ErrSwapStale, apperrors.ErrInvalidState},
		{"swap needs allocations", apperrors.ErrSwapNeedsAllocations, apperrors.ErrValidationFailed},
		{"duplicate student", apperrors.ErrStudentAlreadyExists, apperrors.ErrResourceAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.category)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.True(t, apperrors.IsClientError(wrapped))
		})
	}
}

func TestIsClientErrorRejectsUnknownErrors(t *testing.T) {
	assert.False(t, apperrors.IsClientError(errors.New("connection reset by peer")))
	assert.False(t, apperrors.IsClientError(nil))
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := apperrors.ErrRoomFull.WithDetails(map[string]interface{}{"roomId": 7})

	assert.Nil(t, apperrors.ErrRoomFull.Details)
	assert.Equal(t, 7, detailed.Details["roomId"])
	assert.ErrorIs(t, detailed, apperrors.ErrRoomFull)
	assert.ErrorIs(t, detailed, apperrors.ErrConflict)
	assert.Equal(t, apperrors.ErrRoomFull.Error(), detailed.Error())
}

func TestIsMatchesAnyListedTarget(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", apperrors.ErrTokenExpired)

	assert.True(t, apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenExpired))
	assert.False(t, apperrors.Is(err, apperrors.ErrTokenInvalid))
}
