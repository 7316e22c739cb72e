package voting

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"okinoko_flowvote/sdk"
)

const (
	contractAddr  = sdk.Address("0x9999999999999999999999999999999999999999")
	tokenAddr     = sdk.Address("0x8888888888888888888888888888888888888888")
	allocatorAddr = sdk.Address("0x7777777777777777777777777777777777777777")
	holderAddr    = sdk.Address("0x1111111111111111111111111111111111111111")
	ownerA        = sdk.Address("0x2222222222222222222222222222222222222222")
	ownerB        = sdk.Address("0x3333333333333333333333333333333333333333")
	recipientA    = RecipientID("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	recipientB    = RecipientID("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	recipientC    = RecipientID("0xcccccccccccccccccccccccccccccccccccccccc")
)

func nftConfig() SessionConfig {
	return SessionConfig{
		ChainID:     10,
		Contract:    contractAddr,
		VotingToken: tokenAddr,
		VotingAsset: sdk.AssetERC721,
		Holder:      holderAddr,
	}
}

func tokenConfig() SessionConfig {
	cfg := nftConfig()
	cfg.VotingAsset = sdk.AssetERC20
	return cfg
}

func selfManagedConfig() SessionConfig {
	cfg := nftConfig()
	cfg.Allocator = allocatorAddr
	return cfg
}

// makeUnits builds n units, owners alternating between ownerA and ownerB.
func makeUnits(n int) []VotingPowerUnit {
	units := make([]VotingPowerUnit, 0, n)
	for i := 0; i < n; i++ {
		owner := ownerA
		if i%2 == 1 {
			owner = ownerB
		}
		units = append(units, NFTUnit(owner, int64(i+1)))
	}
	return units
}

// fakeProofs hands out a bundle per batch and can be told to fail the next calls.
type fakeProofs struct {
	mu      sync.Mutex
	batches []int
	sizes   []int
	failN   int
	// tamper, when set, edits each bundle before it is returned
	tamper func(*ProofBundle)
}

func (f *fakeProofs) FetchProofs(_ context.Context, batchIndex int, units []VotingPowerUnit) (*ProofBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, batchIndex)
	f.sizes = append(f.sizes, len(units))
	if f.failN > 0 {
		f.failN--
		return nil, errors.New("proof service unavailable")
	}
	bundle := &ProofBundle{
		BatchIndex:  batchIndex,
		BlockNumber: 100 + uint64(batchIndex),
		StateRoot:   common.HexToHash("0xabcdef"),
		Proofs:      make([][]byte, 0, len(units)),
	}
	for i := range units {
		bundle.Proofs = append(bundle.Proofs, []byte{0x01, byte(batchIndex), byte(i)})
	}
	if f.tamper != nil {
		f.tamper(bundle)
	}
	return bundle, nil
}

func (f *fakeProofs) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.batches...)
}

// memoryVotes is a VotesReader backed by a slice.
type memoryVotes struct {
	mu          sync.Mutex
	votes       []Allocation
	err         error
	reads       int
	invalidated int
}

func (m *memoryVotes) RecordedVotes(context.Context, sdk.Address, sdk.Address) ([]Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	return append([]Allocation(nil), m.votes...), nil
}

func (m *memoryVotes) Invalidate(sdk.Address, sdk.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
}

type sessionFixture struct {
	session  *Session
	executor *sdk.MockExecutor
	notifier *sdk.MockNotifier
	proofs   *fakeProofs
	votes    *memoryVotes
	states   *[]SessionState
}

func newFixture(t *testing.T, cfg SessionConfig, units []VotingPowerUnit, recorded []Allocation, steps ...sdk.MockStep) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		executor: sdk.NewMockExecutor(steps...),
		notifier: &sdk.MockNotifier{},
		proofs:   &fakeProofs{},
		votes:    &memoryVotes{votes: recorded},
		states:   &[]SessionState{},
	}
	s, err := NewSession(cfg, units, SessionDeps{
		Proofs:   f.proofs,
		Executor: f.executor,
		Notifier: f.notifier,
		Votes:    f.votes,
	})
	require.NoError(t, err)
	var mu sync.Mutex
	s.OnTransition(func(tr Transition) {
		mu.Lock()
		defer mu.Unlock()
		*f.states = append(*f.states, tr.To)
	})
	require.NoError(t, s.Activate(context.Background()))
	f.session = s
	return f
}

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}
