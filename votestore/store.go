// Package votestore keeps the allocation a holder last got confirmed on chain.
// Sessions read it to seed their edit state and drop it after a completed sequence.
package votestore

import (
	"context"
	"fmt"

	"okinoko_flowvote/sdk"
	"okinoko_flowvote/voting"
)

// Store is the read side a session needs.
type Store interface {
	RecordedVotes(ctx context.Context, contract, holder sdk.Address) ([]voting.Allocation, error)
	Invalidate(contract, holder sdk.Address)
}

// Writer persists a confirmed allocation.
type Writer interface {
	Record(ctx context.Context, rec VoteRecord) error
}

// VoteRecord is one holder's recorded allocation on one contract.
type VoteRecord struct {
	Contract    sdk.Address
	Holder      sdk.Address
	BlockNumber uint64
	UpdatedAt   int64
	Allocations []voting.Allocation
}

// Key builds the storage key, addresses lower-cased so did and hex forms meet.
// Example payload: Key("0xAbC..", "did:pkh:eip155:10:0xdef..") -> "votes|0xabc..|0xdef.."
func Key(contract, holder sdk.Address) string {
	return fmt.Sprintf("votes|%s|%s", contract.Key(), holder.Key())
}

func copyAllocations(in []voting.Allocation) []voting.Allocation {
	if in == nil {
		return nil
	}
	out := make([]voting.Allocation, len(in))
	copy(out, in)
	return out
}
