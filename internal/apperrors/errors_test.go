package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, "failed to commit transaction: connection reset", err.Error())
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation), http.StatusBadRequest},
		{"funds", fmt.Errorf("%w: balance 10 < 20", apperrors.ErrInsufficientFunds), http.StatusBadRequest},
		{"pin", fmt.Errorf("%w: invalid PIN", apperrors.ErrUnauthorized), http.StatusUnauthorized},
		{"not found", fmt.Errorf("%w: recipient", apperrors.ErrNotFound), http.StatusNotFound},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict},
		{"app error", apperrors.NewAppError(http.StatusServiceUnavailable, "down", nil), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"internal wrapping not found", apperrors.NewAppError(http.StatusInternalServerError, "failed to credit account", fmt.Errorf("%w: account a1", apperrors.ErrNotFound)), http.StatusInternalServerError},
		{"internal wrapping validation", apperrors.NewAppError(http.StatusInternalServerError, "transfer failed after validation", fmt.Errorf("%w: bad row", apperrors.ErrValidation)), http.StatusInternalServerError},
		{"sentinel wrapping app error", fmt.Errorf("lookup: %w", apperrors.NewAppError(http.StatusNotFound, "user not found", nil)), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperrors.StatusCode(tc.err))
		})
	}
}
