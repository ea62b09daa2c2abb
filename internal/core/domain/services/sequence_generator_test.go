package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"devis/internal/core/domain/services"
	"devis/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, key string, year int) (int64, error) {
	args := m.Called(ctx, key, year)
	return args.Get(0).(int64), args.Error(1)
}

// memorySequences mimics the atomic upsert of the database adapter.
type memorySequences struct {
	mu       sync.Mutex
	counters map[string]int64
}

func (s *memorySequences) Next(_ context.Context, key string, year int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := fmt.Sprintf("%s/%d", key, year)
	s.counters[k]++
	return s.counters[k], nil
}

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC) }
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "REQ-2025-0042", services.FormatNumber("REQ", 2025, 42))
	assert.Equal(t, "DEV-2025-0001", services.FormatNumber("DEV", 2025, 1))
	assert.Equal(t, "REQ-2025-12345", services.FormatNumber("REQ", 2025, 12345))
}

func TestSequenceGenerator_NextFormatted(t *testing.T) {
	ctx := t.Context()

	t.Run("should use the clock year and the sequence key", func(t *testing.T) {
		repo := &MockSequenceRepository{}
		repo.On("Next", ctx, "quote", 2025).Return(int64(7), nil).Once()
		generator := services.NewSequenceGenerator(fixedClock(2025))

		number, err := generator.NextFormatted(ctx, repo, services.QuoteSequence)

		require.NoError(t, err)
		assert.Equal(t, "DEV-2025-0007", number)
		repo.AssertExpectations(t)
	})

	t.Run("should propagate repository errors", func(t *testing.T) {
		repo := &MockSequenceRepository{}
		conflict := errs.NewConcurrencyConflictError("number_sequences", errors.New("40001"))
		repo.On("Next", ctx, "quote_request", 2025).Return(int64(0), conflict).Once()
		generator := services.NewSequenceGenerator(fixedClock(2025))

		_, err := generator.NextFormatted(ctx, repo, services.RequestSequence)

		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	})

	t.Run("should reject non positive values", func(t *testing.T) {
		repo := &MockSequenceRepository{}
		repo.On("Next", ctx, "quote", 2025).Return(int64(0), nil).Once()
		generator := services.NewSequenceGenerator(fixedClock(2025))

		_, err := generator.Next(ctx, repo, "quote")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should require a key", func(t *testing.T) {
		generator := services.NewSequenceGenerator(fixedClock(2025))

		_, err := generator.NextFormatted(ctx, &MockSequenceRepository{}, services.Sequence{Prefix: "X"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestSequenceGenerator_ConcurrentCallersGetConsecutiveNumbers(t *testing.T) {
	const callers = 50
	repo := &memorySequences{counters: map[string]int64{}}
	generator := services.NewSequenceGenerator(fixedClock(2025))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[int64]struct{}, callers)
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := generator.Next(t.Context(), repo, services.RequestSequence.Key)
			assert.NoError(t, err)
			mu.Lock()
			numbers[value] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, numbers, callers)
	for i := int64(1); i <= callers; i++ {
		assert.Contains(t, numbers, i)
	}
}

func TestSequenceGenerator_RestartsEveryYear(t *testing.T) {
	repo := &memorySequences{counters: map[string]int64{}}

	first, err := services.NewSequenceGenerator(fixedClock(2025)).NextFormatted(t.Context(), repo, services.RequestSequence)
	require.NoError(t, err)
	second, err := services.NewSequenceGenerator(fixedClock(2025)).NextFormatted(t.Context(), repo, services.RequestSequence)
	require.NoError(t, err)
	next, err := services.NewSequenceGenerator(fixedClock(2026)).NextFormatted(t.Context(), repo, services.RequestSequence)
	require.NoError(t, err)

	assert.Equal(t, "REQ-2025-0001", first)
	assert.Equal(t, "REQ-2025-0002", second)
	assert.Equal(t, "REQ-2026-0001", next)
}
