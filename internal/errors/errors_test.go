package errors_test

import (
	"fmt"
	"testing"

	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create: %w", apperrors.NewValidation("password", "Password is required."))

	require.True(t, apperrors.Is(err, apperrors.ErrValidation))
	require.False(t, apperrors.Is(err, apperrors.ErrAccessDenied))

	var verr *apperrors.ValidationError
	require.True(t, apperrors.As(err, &verr))
	require.Equal(t, "Password is required.", verr.Message)
	require.Equal(t, "password", verr.Field)
}

func TestWrapf(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "noop"))

	err := apperrors.Wrapf(apperrors.ErrUserNotFound, "lookup %d", 7)
	require.EqualError(t, err, "lookup 7: user not found")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
