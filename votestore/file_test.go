package votestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_flowvote/sdk"
)

func TestMemoryStoreRecordAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rec := sampleRecord()

	votes, err := store.RecordedVotes(ctx, rec.Contract, rec.Holder)
	require.NoError(t, err)
	assert.Nil(t, votes)

	require.NoError(t, store.Record(ctx, rec))
	// did form of the same holder hits the same entry
	votes, err = store.RecordedVotes(ctx, rec.Contract, sdk.Address("did:pkh:eip155:10:"+holderAddr))
	require.NoError(t, err)
	assert.Equal(t, rec.Allocations, votes)

	require.NoError(t, store.Delete(rec.Contract, rec.Holder))
	votes, err = store.RecordedVotes(ctx, rec.Contract, rec.Holder)
	require.NoError(t, err)
	assert.Nil(t, votes)
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "votes.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	rec := sampleRecord()
	rec.UpdatedAt = 0
	require.NoError(t, store.Record(ctx, rec))

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	votes, err := reloaded.RecordedVotes(ctx, rec.Contract, rec.Holder)
	require.NoError(t, err)
	assert.Equal(t, rec.Allocations, votes)
}

func TestFileStoreCorruptEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "votes.json")
	rec := sampleRecord()
	body := `{"` + Key(rec.Contract, rec.Holder) + `":"zz"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = store.RecordedVotes(ctx, rec.Contract, rec.Holder)
	assert.ErrorContains(t, err, "corrupt record")

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	_, err = NewFileStore(path)
	assert.Error(t, err)
}
