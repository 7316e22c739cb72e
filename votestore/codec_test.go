package votestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_flowvote/voting"
)

func TestRecordCodecKeepsOrder(t *testing.T) {
	rec := sampleRecord()
	got, err := DecodeRecord(EncodeRecord(&rec))
	require.NoError(t, err)
	assert.Equal(t, rec, *got)
}

func TestRecordCodecEmptyAllocation(t *testing.T) {
	rec := sampleRecord()
	rec.Allocations = nil
	got, err := DecodeRecord(EncodeRecord(&rec))
	require.NoError(t, err)
	assert.Empty(t, got.Allocations)
}

func TestDecodeRecordRejectsCorruptData(t *testing.T) {
	rec := sampleRecord()
	raw := EncodeRecord(&rec)

	_, err := DecodeRecord(nil)
	assert.Error(t, err)

	_, err = DecodeRecord(raw[:len(raw)-1])
	assert.Error(t, err, "truncated")

	_, err = DecodeRecord(append(append([]byte{}, raw...), 0x00))
	assert.Error(t, err, "trailing")

	bad := append([]byte{}, raw...)
	bad[0] = 9
	_, err = DecodeRecord(bad)
	assert.ErrorContains(t, err, "version")

	rec.Allocations = []voting.Allocation{{Recipient: recipientA, Bps: 10001}}
	_, err = DecodeRecord(EncodeRecord(&rec))
	assert.ErrorIs(t, err, voting.ErrInvalidAllocationValue)
}
