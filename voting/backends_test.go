package voting

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko_flowvote/sdk"
)

func TestResolveBackend(t *testing.T) {
	backend, err := ResolveBackend(nftConfig())
	require.NoError(t, err)
	assert.Equal(t, BackendProofBasedNFT, backend.Kind())
	assert.True(t, backend.NeedsProofs())
	assert.Equal(t, ProofBatchSize, backend.BatchSize())

	backend, err = ResolveBackend(tokenConfig())
	require.NoError(t, err)
	assert.Equal(t, BackendTokenWeighted, backend.Kind())
	assert.False(t, backend.NeedsProofs())
	assert.Equal(t, DefaultBatchSize, backend.BatchSize())

	// allocator wins over the asset
	backend, err = ResolveBackend(selfManagedConfig())
	require.NoError(t, err)
	assert.Equal(t, BackendSelfManaged, backend.Kind())
	assert.True(t, backend.AllowsEmpty())
	assert.Equal(t, allocatorAddr, backend.Target(selfManagedConfig()))
	assert.Equal(t, contractAddr, ProofBasedNFT.Target(selfManagedConfig()))
}

func TestResolveBackendUnsupported(t *testing.T) {
	cfg := nftConfig()
	cfg.VotingAsset = "erc1155"
	_, err := ResolveBackend(cfg)
	assert.ErrorIs(t, err, ErrUnsupportedBackend)

	cfg = nftConfig()
	cfg.VotingToken = ""
	_, err = ResolveBackend(cfg)
	assert.ErrorIs(t, err, ErrUnsupportedBackend)

	cfg = nftConfig()
	cfg.Allocator = "not-an-address"
	_, err = ResolveBackend(cfg)
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestBuildCallTokenWeighted(t *testing.T) {
	args := &SubmissionArgs{
		RecipientIDs:      []RecipientID{recipientA, recipientB},
		ScaledPercentages: []uint32{250000, 500000},
	}
	call, err := BuildCall(tokenConfig(), TokenWeighted, args)
	require.NoError(t, err)
	assert.Equal(t, contractAddr, call.Contract)
	assert.Equal(t, uint64(10), call.ChainID)
	assert.Equal(t, MethodVote, call.Method)
	assert.Equal(t, holderAddr, call.Account)
	assert.Equal(t, call.Selector[:], call.Data[:4])

	method, values, err := DecodeCall(call.Data)
	require.NoError(t, err)
	assert.Equal(t, MethodVote, method)
	require.Len(t, values, 2)
	assert.Equal(t, []common.Address{sdk.Address(recipientA).Common(), sdk.Address(recipientB).Common()}, values[0])
	assert.Equal(t, []uint32{250000, 500000}, values[1])
}

func TestBuildCallSelfManagedEmpty(t *testing.T) {
	call, err := BuildCall(selfManagedConfig(), SelfManaged, &SubmissionArgs{})
	require.NoError(t, err)
	assert.Equal(t, allocatorAddr, call.Contract)

	method, values, err := DecodeCall(call.Data)
	require.NoError(t, err)
	assert.Equal(t, MethodSetAllocations, method)
	assert.Empty(t, values[0])
	assert.Empty(t, values[1])
}

func TestBuildCallWithProofs(t *testing.T) {
	set, err := NewAllocationSet([]Allocation{{recipientA, 10000}})
	require.NoError(t, err)
	args, err := Encode(set, makeUnits(3), ProofBasedNFT)
	require.NoError(t, err)

	_, err = BuildCall(nftConfig(), ProofBasedNFT, args)
	assert.ErrorIs(t, err, ErrProofFetchFailed)

	root := common.HexToHash("0x01")
	args.Proof = &ProofBundle{BlockNumber: 42, StateRoot: root, Proofs: [][]byte{{0xaa}, {0xbb, 0xcc}}}
	call, err := BuildCall(nftConfig(), ProofBasedNFT, args)
	require.NoError(t, err)

	method, values, err := DecodeCall(call.Data)
	require.NoError(t, err)
	assert.Equal(t, MethodVoteWithProofs, method)
	require.Len(t, values, 7)
	assert.Equal(t, []common.Address{ownerA.Common(), ownerB.Common()}, values[0])
	assert.Equal(t, [][]*big.Int{{big.NewInt(1), big.NewInt(3)}, {big.NewInt(2)}}, values[1])
	assert.Equal(t, []uint32{1000000}, values[3])
	assert.Equal(t, big.NewInt(42), values[4])
	assert.Equal(t, [32]byte(root), values[5])
	assert.Equal(t, [][]byte{{0xaa}, {0xbb, 0xcc}}, values[6])
}

func TestBuildCallRejectsNonAddressRecipient(t *testing.T) {
	args := &SubmissionArgs{RecipientIDs: []RecipientID{"project-7"}, ScaledPercentages: []uint32{1}}
	_, err := BuildCall(tokenConfig(), TokenWeighted, args)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestBuildCallRejectsSameAddressTwice(t *testing.T) {
	args := &SubmissionArgs{
		RecipientIDs:      []RecipientID{recipientA, "did:pkh:eip155:10:" + recipientA},
		ScaledPercentages: []uint32{250000, 500000},
	}
	_, err := BuildCall(tokenConfig(), TokenWeighted, args)
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	// checked before the missing bundle
	_, err = BuildCall(nftConfig(), ProofBasedNFT, args)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestDecodeCallRejectsGarbage(t *testing.T) {
	_, _, err := DecodeCall([]byte{0x01})
	assert.Error(t, err)
	_, _, err = DecodeCall([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.Error(t, err)
}
