package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ProofBundle is the ownership/delegation attestation for exactly one batch.
// Bundles are never reused across batches, the unit set differs every time.
type ProofBundle struct {
	BatchIndex  int
	BlockNumber uint64
	StateRoot   common.Hash
	Proofs      [][]byte
}

// ProofFetcher asks the remote proof service for a batch's bundle.
// Only backends with NeedsProofs call it.
type ProofFetcher interface {
	FetchProofs(ctx context.Context, batchIndex int, units []VotingPowerUnit) (*ProofBundle, error)
}

// ProofFetcherFunc adapts a plain func.
type ProofFetcherFunc func(ctx context.Context, batchIndex int, units []VotingPowerUnit) (*ProofBundle, error)

func (f ProofFetcherFunc) FetchProofs(ctx context.Context, batchIndex int, units []VotingPowerUnit) (*ProofBundle, error) {
	return f(ctx, batchIndex, units)
}

// checkBundle matches a fetched bundle against the batch it was asked for.
// Every unit needs its own proof.
func checkBundle(bundle *ProofBundle, batchIndex, units int) error {
	if bundle == nil {
		return errors.New("empty proof bundle")
	}
	if bundle.BatchIndex != batchIndex {
		return fmt.Errorf("bundle is for batch %d, want %d", bundle.BatchIndex+1, batchIndex+1)
	}
	if len(bundle.Proofs) < units {
		return fmt.Errorf("%d proof(s) for %d unit(s)", len(bundle.Proofs), units)
	}
	return nil
}
