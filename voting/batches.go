package voting

import (
	"fmt"

	"okinoko_flowvote/sdk"
)

// -----------------------------------------------------------------------------
// Batch Planning
// -----------------------------------------------------------------------------

// BatchSizePolicy decides how many units go into one transaction.
type BatchSizePolicy interface {
	BatchSize() int
}

// FixedBatchSize is the plain constant policy.
type FixedBatchSize int

func (f FixedBatchSize) BatchSize() int { return int(f) }

// BatchPlan is derived from a unit snapshot and never stored.
type BatchPlan struct {
	BatchSize    int
	TotalBatches int
	units        []VotingPowerUnit
}

// SessionUnits fixes the unit list a backend votes with. Backends that do not group by
// owner vote once with the holder's whole weight, whatever units were passed in.
// Owner grouping backends need a token id on every unit.
func SessionUnits(backend Backend, holder sdk.Address, units []VotingPowerUnit) ([]VotingPowerUnit, error) {
	if !backend.GroupsByOwner() {
		return []VotingPowerUnit{SingletonUnit(holder)}, nil
	}
	for i, u := range units {
		if u.IsSingleton() {
			return nil, fmt.Errorf("%w: unit %d of %s has no token id", ErrInvalidUnit, i, u.Owner)
		}
		if !u.Owner.IsValid() {
			return nil, fmt.Errorf("%w: unit %d owner %q is not an address", ErrInvalidUnit, i, u.Owner)
		}
	}
	return units, nil
}

// PlanFor partitions units into contiguous batches. A holder with no units still gets
// one empty batch so progress can always read "batch 1 of 1".
// Example payload: PlanFor(FixedBatchSize(15), units)
func PlanFor(policy BatchSizePolicy, units []VotingPowerUnit) *BatchPlan {
	size := DefaultBatchSize
	if policy != nil && policy.BatchSize() > 0 {
		size = policy.BatchSize()
	}
	snapshot := make([]VotingPowerUnit, len(units))
	copy(snapshot, units)
	total := (len(snapshot) + size - 1) / size
	if total < 1 {
		total = 1
	}
	return &BatchPlan{
		BatchSize:    size,
		TotalBatches: total,
		units:        snapshot,
	}
}

// TotalUnits is the size of the snapshot the plan was built from.
func (p *BatchPlan) TotalUnits() int {
	return len(p.units)
}

// UnitsForBatch returns the slice [index*size, (index+1)*size) of the snapshot.
func (p *BatchPlan) UnitsForBatch(index int) ([]VotingPowerUnit, error) {
	if index < 0 || index >= p.TotalBatches {
		return nil, fmt.Errorf("%w: %d of %d", ErrBatchOutOfRange, index, p.TotalBatches)
	}
	lo := index * p.BatchSize
	if lo >= len(p.units) {
		return []VotingPowerUnit{}, nil
	}
	hi := lo + p.BatchSize
	if hi > len(p.units) {
		hi = len(p.units)
	}
	return p.units[lo:hi:hi], nil
}
