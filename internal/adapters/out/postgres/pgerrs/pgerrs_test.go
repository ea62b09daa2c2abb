package pgerrs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"devis/internal/adapters/out/postgres/pgerrs"
	"devis/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind errs.Kind
	}{
		{"serialization", &pgconn.PgError{Code: pgerrs.SerializationFailure}, errs.KindDependencyFailure},
		{"deadlock", &pgconn.PgError{Code: pgerrs.DeadlockDetected}, errs.KindDependencyFailure},
		{"unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrs.UniqueViolation}), errs.KindDependencyFailure},
		{"syntax", &pgconn.PgError{Code: "42601"}, errs.KindDependencyFailure},
		{"not found passes through", errs.NewObjectNotFoundError("quoteRequestId", "1"), errs.KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, errs.KindOf(pgerrs.Classify("quote_requests", tc.err)))
		})
	}
}

func TestClassify_ConflictsAreRetryable(t *testing.T) {
	err := pgerrs.Classify("number_sequences", &pgconn.PgError{Code: pgerrs.SerializationFailure})

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.True(t, errs.IsRetryable(err))
	assert.False(t, errs.IsRetryable(pgerrs.Classify("number_sequences", &pgconn.PgError{Code: "42601"})))
}

func TestClassify_KeepsCancellation(t *testing.T) {
	err := pgerrs.Classify("quote_requests", fmt.Errorf("query: %w", context.Canceled))

	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, errs.ErrDependencyFailure)
	require.NoError(t, pgerrs.Classify("quote_requests", nil))
	assert.False(t, pgerrs.IsConflict(errors.New("boom")))
}
