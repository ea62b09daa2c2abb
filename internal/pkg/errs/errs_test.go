package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"devis/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("quoteRequestId", "123")

		assert.Equal(t, "quoteRequestId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("productId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: productId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("courierId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("discountTotal")

		assert.Equal(t, "value is invalid: discountTotal", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("negative amount")
		err := errs.NewValueIsInvalidErrorWithCause("discountTotal", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: discountTotal (cause: negative amount)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 150, -90, 90)

		assert.Equal(t, "value is invalid: 150 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", -5, 1, 100, cause)

		assert.Equal(t,
			"value is invalid: -5 is quantity, min value is 1, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("items")
	assert.Equal(t, "value is required: items", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("items", errors.New("all quantities are zero"))
	assert.Equal(t, "value is required: items (cause: all quantities are zero)", withCause.Error())
}

func TestInvalidStateError(t *testing.T) {
	err := errs.NewInvalidStateError("confirm delivery", "QUOTING")

	assert.Equal(t, "invalid state: cannot confirm delivery from status QUOTING", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("confirm delivery", "courier is not assigned to this request")

	assert.Equal(t, "forbidden: confirm delivery: courier is not assigned to this request", err.Error())
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestDependencyFailureError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewDependencyFailureErrorWithCause("pdf renderer", cause)

	assert.Equal(t, "dependency failure: pdf renderer (cause: connection refused)", err.Error())
	require.ErrorIs(t, err, errs.ErrDependencyFailure)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "dependency failure: object store", errs.NewDependencyFailureError("object store").Error())
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind errs.Kind
	}{
		{"nil", nil, ""},
		{"not found", errs.NewObjectNotFoundError("id", "1"), errs.KindNotFound},
		{"required", errs.NewValueIsRequiredError("items"), errs.KindInvalidArgument},
		{"invalid", errs.NewValueIsInvalidError("ip"), errs.KindInvalidArgument},
		{"out of range", errs.NewValueIsOutOfRangeError("lat", 100, -90, 90), errs.KindInvalidArgument},
		{"state", errs.NewInvalidStateError("send", "COMPLETED"), errs.KindInvalidState},
		{"forbidden", errs.NewForbiddenError("send", "client"), errs.KindForbidden},
		{"dependency", errs.NewDependencyFailureError("renderer"), errs.KindDependencyFailure},
		{"conflict", errs.NewConcurrencyConflictError("number_sequences", nil), errs.KindDependencyFailure},
		{"wrapped", fmt.Errorf("handler: %w", errs.NewInvalidStateError("send", "COMPLETED")), errs.KindInvalidState},
		{"unknown", errors.New("boom"), errs.KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, errs.KindOf(tc.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, errs.IsRetryable(errs.NewConcurrencyConflictError("quote_requests", errors.New("40001"))))
	assert.False(t, errs.IsRetryable(errs.NewDependencyFailureError("renderer")))
	assert.False(t, errs.IsRetryable(nil))
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "invalid state", errs.ErrInvalidState.Error())
	assert.Equal(t, "forbidden", errs.ErrForbidden.Error())
	assert.Equal(t, "dependency failure", errs.ErrDependencyFailure.Error())
}
