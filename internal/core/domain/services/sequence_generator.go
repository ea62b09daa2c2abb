package services

import (
	"context"
	"fmt"
	"time"

	"devis/internal/core/ports"
	"devis/internal/pkg/errs"
)

// Sequence names a counter and the prefix of the numbers it produces.
type Sequence struct {
	Key    string
	Prefix string
}

var (
	// RequestSequence numbers quote requests at submission.
	RequestSequence = Sequence{Key: "quote_request", Prefix: "REQ"}

	// QuoteSequence numbers quotes when they are first sent.
	QuoteSequence = Sequence{Key: "quote", Prefix: "DEV"}
)

// SequenceGenerator issues strictly increasing numbers per key and calendar
// year. Counters restart at 1 every year.
//
// Uniqueness relies on the repository incrementing in a single statement
// inside the caller's transaction: the counter row stays locked until commit,
// so concurrent callers of the same key and year are serialized. A commit
// that loses the race is reported as a concurrency conflict and the caller
// retries the whole unit of work.
type SequenceGenerator struct {
	clock func() time.Time
}

func NewSequenceGenerator(clock func() time.Time) SequenceGenerator {
	if clock == nil {
		clock = time.Now
	}
	return SequenceGenerator{clock: clock}
}

// Next returns the next value of key for the current year.
func (g SequenceGenerator) Next(ctx context.Context, repo ports.SequenceRepository, key string) (int64, error) {
	return g.next(ctx, repo, key, g.clock().Year())
}

// NextFormatted returns the next document number of seq, e.g. DEV-2025-0007.
func (g SequenceGenerator) NextFormatted(ctx context.Context, repo ports.SequenceRepository, seq Sequence) (string, error) {
	year := g.clock().Year()
	value, err := g.next(ctx, repo, seq.Key, year)
	if err != nil {
		return "", err
	}
	return FormatNumber(seq.Prefix, year, value), nil
}

func (g SequenceGenerator) next(ctx context.Context, repo ports.SequenceRepository, key string, year int) (int64, error) {
	if key == "" {
		return 0, errs.NewValueIsRequiredError("sequence key")
	}
	value, err := repo.Next(ctx, key, year)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, errs.NewValueIsOutOfRangeError("sequence value", value, 1, "∞")
	}
	return value, nil
}

// FormatNumber zero-pads value to four digits; larger values are printed in full.
func FormatNumber(prefix string, year int, value int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, value)
}
