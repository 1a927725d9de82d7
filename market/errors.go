package market

import "errors"

// Error taxonomy for the validation pipeline. Data-quality problems are
// never recovered by estimating or defaulting values; callers get one of
// these wrapped with the offending detail.
var (
	// ErrInsufficientData means a series was shorter than the minimum
	// window an indicator requires, or contained non-finite values.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrStaleData means a price timestamp fell outside the staleness
	// window and the pipeline refused to evaluate against it.
	ErrStaleData = errors.New("stale data")

	// ErrInvalidProposal covers entry==stop, non-positive balances or
	// sizes, and unknown directions or product types.
	ErrInvalidProposal = errors.New("invalid proposal")
)
