package voting

import "errors"

var (
	// ErrInvalidAllocationValue rejects bps outside [0, MaxBps] before it enters a set.
	ErrInvalidAllocationValue = errors.New("invalid allocation value")
	// ErrEmptyAllocation is returned at encode time when the backend needs at least one recipient.
	ErrEmptyAllocation = errors.New("allocation has no recipients")
	// ErrProofFetchFailed wraps proof service failures. Retryable.
	ErrProofFetchFailed = errors.New("proof fetch failed")
	// ErrSubmissionRejected wraps declined signatures and reverted transactions. Retryable.
	ErrSubmissionRejected = errors.New("submission rejected")
	// ErrUnsupportedBackend means the session config maps to no known backend.
	ErrUnsupportedBackend = errors.New("unsupported voting backend")

	ErrInvalidRecipient   = errors.New("invalid recipient")
	ErrInvalidUnit        = errors.New("invalid voting power unit")
	ErrBatchOutOfRange    = errors.New("batch index out of range")
	ErrSessionNotActive   = errors.New("session not active")
	ErrSubmitInFlight     = errors.New("a batch is already in flight")
	ErrSequenceInProgress = errors.New("batch sequence in progress")
)
