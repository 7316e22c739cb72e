package voting

import (
	"fmt"
	"math/big"

	"okinoko_flowvote/sdk"
)

// -----------------------------------------------------------------------------
// Allocation Encoding
// -----------------------------------------------------------------------------

// OwnerGroup is one distinct owner of a batch with that owner's unit ids.
type OwnerGroup struct {
	Owner   sdk.Address
	UnitIDs []*big.Int
}

// SubmissionArgs is the backend independent shape of one batch call.
type SubmissionArgs struct {
	RecipientIDs      []RecipientID
	ScaledPercentages []uint32
	OwnerGroups       []OwnerGroup
	Proof             *ProofBundle
}

// Encode turns the set into call arguments for one batch. Empty sets fail with
// ErrEmptyAllocation unless the backend allows clearing all recipients.
func Encode(set *AllocationSet, units []VotingPowerUnit, backend Backend) (*SubmissionArgs, error) {
	allocs := set.Allocations()
	if len(allocs) == 0 && !backend.AllowsEmpty() {
		return nil, fmt.Errorf("%w: %s backend needs at least one recipient", ErrEmptyAllocation, backend.Kind())
	}
	args := &SubmissionArgs{
		RecipientIDs:      make([]RecipientID, 0, len(allocs)),
		ScaledPercentages: make([]uint32, 0, len(allocs)),
	}
	for _, a := range allocs {
		args.RecipientIDs = append(args.RecipientIDs, a.Recipient)
		args.ScaledPercentages = append(args.ScaledPercentages, ScaledPercentage(a.Bps))
	}
	if backend.GroupsByOwner() {
		args.OwnerGroups = GroupByOwner(units)
	}
	return args, nil
}

// GroupByOwner collects the batch's distinct owners in order of first appearance.
// Only the given units are looked at, groups never span batches. Singleton units carry
// no token id and are skipped.
func GroupByOwner(units []VotingPowerUnit) []OwnerGroup {
	groups := make([]OwnerGroup, 0)
	index := make(map[string]int)
	for _, u := range units {
		if u.IsSingleton() {
			continue
		}
		key := u.Owner.Key()
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, OwnerGroup{Owner: u.Owner})
		}
		groups[i].UnitIDs = append(groups[i].UnitIDs, new(big.Int).Set(u.UnitID))
	}
	return groups
}
