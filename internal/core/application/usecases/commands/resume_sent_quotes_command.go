package commands

import (
	"errors"
	"time"

	"devis/internal/pkg/errs"
	"devis/internal/pkg/guard"
)

var ErrResumeSentQuotesCommandIsNotConstructed = errors.New(
	"ResumeSentQuotesCommand must be created via NewResumeSentQuotesCommand constructor",
)

// ResumeSentQuotesCommand finishes sends that stopped in QUOTE_SENT. Only
// requests last updated more than olderThan ago are picked up, so that a send
// still in flight is left alone.
type ResumeSentQuotesCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration
	limit     int

	guard guard.ConstructorGuard
}

func NewResumeSentQuotesCommand(olderThan time.Duration, limit int) (ResumeSentQuotesCommand, error) {
	if olderThan < 0 {
		return ResumeSentQuotesCommand{}, errs.NewValueIsOutOfRangeError("olderThan", olderThan, 0, "∞")
	}
	if limit <= 0 {
		return ResumeSentQuotesCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "∞")
	}
	return ResumeSentQuotesCommand{
		olderThan: olderThan,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ResumeSentQuotesCommand) Validate() error {
	return c.guard.Validate(ErrResumeSentQuotesCommandIsNotConstructed)
}

func (c ResumeSentQuotesCommand) OlderThan() time.Duration { return c.olderThan }
func (c ResumeSentQuotesCommand) Limit() int               { return c.limit }
