package votestore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_flowvote/voting"
)

func TestVoteDocConversion(t *testing.T) {
	rec := sampleRecord()
	doc := toDoc(rec)
	assert.Equal(t, Key(rec.Contract, rec.Holder), doc.ID)
	assert.Equal(t, int64(991), doc.BlockNumber)
	require.Len(t, doc.Allocations, 2)
	assert.Equal(t, allocationDoc{Recipient: recipientB, Bps: 5000}, doc.Allocations[0])

	allocs, err := fromDoc(&doc)
	require.NoError(t, err)
	assert.Equal(t, rec.Allocations, allocs)

	doc.Allocations[1].Bps = -1
	_, err = fromDoc(&doc)
	assert.ErrorIs(t, err, voting.ErrInvalidAllocationValue)
}

// TestMongoStoreRoundTrip needs a reachable server, e.g.
// FLOWVOTE_MONGO_URI=mongodb://localhost:27017 go test ./votestore/
func TestMongoStoreRoundTrip(t *testing.T) {
	uri := os.Getenv("FLOWVOTE_MONGO_URI")
	if uri == "" {
		t.Skip("FLOWVOTE_MONGO_URI not set")
	}
	ctx := context.Background()
	store, disconnect, err := ConnectMongo(ctx, uri, "flowvote_test", "votes_"+uuid.NewString())
	require.NoError(t, err)
	defer func() {
		_ = store.coll.Drop(ctx)
		_ = disconnect(ctx)
	}()

	rec := sampleRecord()
	votes, err := store.RecordedVotes(ctx, rec.Contract, rec.Holder)
	require.NoError(t, err)
	assert.Nil(t, votes)

	require.NoError(t, store.Record(ctx, rec))
	rec.Allocations = rec.Allocations[:1]
	require.NoError(t, store.Record(ctx, rec))

	votes, err = store.RecordedVotes(ctx, rec.Contract, rec.Holder)
	require.NoError(t, err)
	assert.Equal(t, rec.Allocations, votes)
}
