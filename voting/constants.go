package voting

import "time"

// -----------------------------------------------------------------------------
// Percentage Scaling
// -----------------------------------------------------------------------------

const (
	// MaxBps is 100% expressed in basis points.
	MaxBps = 10_000
	// PercentageScale is the fixed-point denominator the voting contracts use for percentages.
	PercentageScale = 1_000_000
)

// -----------------------------------------------------------------------------
// Batch Sizes
// -----------------------------------------------------------------------------

const (
	// ProofBatchSize keeps proof carrying batches small, every unit adds a storage proof to calldata.
	ProofBatchSize = 15
	// DefaultBatchSize is used by every backend that does not attach proofs.
	DefaultBatchSize = 1000
)

// -----------------------------------------------------------------------------
// Submission Methods
// -----------------------------------------------------------------------------

const (
	MethodVoteWithProofs = "voteWithProofs"
	MethodVote           = "vote"
	MethodSetAllocations = "setAllocations"
)

// -----------------------------------------------------------------------------
// Default/Fallback Values
// -----------------------------------------------------------------------------

const (
	FallbackProofTimeout = 20 * time.Second
	FallbackChainID      = 10
)
