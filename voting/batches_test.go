package voting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanForProofBackend(t *testing.T) {
	units := makeUnits(37)
	plan := PlanFor(ProofBasedNFT, units)
	assert.Equal(t, 15, plan.BatchSize)
	assert.Equal(t, 3, plan.TotalBatches)

	var seen []VotingPowerUnit
	for i, want := range []int{15, 15, 7} {
		batch, err := plan.UnitsForBatch(i)
		require.NoError(t, err)
		assert.Len(t, batch, want)
		seen = append(seen, batch...)
	}
	// contiguous, no reordering
	assert.Equal(t, units, seen)

	_, err := plan.UnitsForBatch(3)
	assert.ErrorIs(t, err, ErrBatchOutOfRange)
	_, err = plan.UnitsForBatch(-1)
	assert.ErrorIs(t, err, ErrBatchOutOfRange)
}

func TestPlanForEmptyAndExact(t *testing.T) {
	plan := PlanFor(TokenWeighted, nil)
	assert.Equal(t, 1, plan.TotalBatches)
	batch, err := plan.UnitsForBatch(0)
	require.NoError(t, err)
	assert.Empty(t, batch)

	plan = PlanFor(ProofBasedNFT, makeUnits(30))
	assert.Equal(t, 2, plan.TotalBatches)

	plan = PlanFor(TokenWeighted, makeUnits(1001))
	assert.Equal(t, 2, plan.TotalBatches)
	assert.Equal(t, 1001, plan.TotalUnits())
}

func TestPlanForSnapshotsUnits(t *testing.T) {
	units := makeUnits(3)
	plan := PlanFor(FixedBatchSize(2), units)
	units[0] = NFTUnit(ownerB, 99)
	batch, err := plan.UnitsForBatch(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), batch[0].UnitID.Int64())

	// a bad policy falls back to the default size
	plan = PlanFor(FixedBatchSize(0), units)
	assert.Equal(t, DefaultBatchSize, plan.BatchSize)
	plan = PlanFor(nil, units)
	assert.Equal(t, DefaultBatchSize, plan.BatchSize)
}

func TestSessionUnits(t *testing.T) {
	units, err := SessionUnits(TokenWeighted, holderAddr, makeUnits(2500))
	require.NoError(t, err)
	assert.Equal(t, []VotingPowerUnit{SingletonUnit(holderAddr)}, units)

	units, err = SessionUnits(SelfManaged, holderAddr, nil)
	require.NoError(t, err)
	assert.Equal(t, []VotingPowerUnit{SingletonUnit(holderAddr)}, units)

	units, err = SessionUnits(ProofBasedNFT, holderAddr, makeUnits(4))
	require.NoError(t, err)
	assert.Len(t, units, 4)

	_, err = SessionUnits(ProofBasedNFT, holderAddr, []VotingPowerUnit{NFTUnit(ownerA, 1), SingletonUnit(ownerB)})
	assert.ErrorIs(t, err, ErrInvalidUnit)

	_, err = SessionUnits(ProofBasedNFT, holderAddr, []VotingPowerUnit{NFTUnit("nobody", 1)})
	assert.ErrorIs(t, err, ErrInvalidUnit)
}
