package voting

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"okinoko_flowvote/sdk"
)

// -----------------------------------------------------------------------------
// Voting Backends
// -----------------------------------------------------------------------------

// Backend is the capability set a session is bound to. Planner, proof fetcher and
// session only talk to this interface, so a new backend is a new implementation.
type Backend interface {
	BatchSizePolicy
	Kind() BackendKind
	NeedsProofs() bool
	AllowsEmpty() bool
	GroupsByOwner() bool
	Method() string
	// Target picks the contract the call goes to.
	Target(cfg SessionConfig) sdk.Address
	// CallArgs orders SubmissionArgs into the method's abi arguments.
	CallArgs(args *SubmissionArgs) ([]interface{}, error)
}

// backendCaps keeps every capability as data instead of branching on kinds.
type backendCaps struct {
	kind          BackendKind
	batchSize     BatchSizePolicy
	needsProofs   bool
	allowsEmpty   bool
	groupsByOwner bool
	method        string
	toAllocator   bool
	callArgs      func(args *SubmissionArgs) ([]interface{}, error)
}

func (b *backendCaps) BatchSize() int      { return b.batchSize.BatchSize() }
func (b *backendCaps) Kind() BackendKind   { return b.kind }
func (b *backendCaps) NeedsProofs() bool   { return b.needsProofs }
func (b *backendCaps) AllowsEmpty() bool   { return b.allowsEmpty }
func (b *backendCaps) GroupsByOwner() bool { return b.groupsByOwner }
func (b *backendCaps) Method() string      { return b.method }

func (b *backendCaps) Target(cfg SessionConfig) sdk.Address {
	if b.toAllocator {
		return cfg.Allocator
	}
	return cfg.Contract
}

func (b *backendCaps) CallArgs(args *SubmissionArgs) ([]interface{}, error) {
	return b.callArgs(args)
}

var (
	// ProofBasedNFT votes with delegated NFTs, each batch carries storage proofs.
	ProofBasedNFT Backend = &backendCaps{
		kind:          BackendProofBasedNFT,
		batchSize:     FixedBatchSize(ProofBatchSize),
		needsProofs:   true,
		groupsByOwner: true,
		method:        MethodVoteWithProofs,
		callArgs:      proofCallArgs,
	}
	// TokenWeighted votes with a fungible holder's weight, checked by the contract itself.
	TokenWeighted Backend = &backendCaps{
		kind:      BackendTokenWeighted,
		batchSize: FixedBatchSize(DefaultBatchSize),
		method:    MethodVote,
		callArgs:  allocationCallArgs,
	}
	// SelfManaged lets a configured allocator set the split directly, clearing it is allowed.
	SelfManaged Backend = &backendCaps{
		kind:        BackendSelfManaged,
		batchSize:   FixedBatchSize(DefaultBatchSize),
		allowsEmpty: true,
		method:      MethodSetAllocations,
		toAllocator: true,
		callArgs:    allocationCallArgs,
	}
)

// ResolveBackend picks the backend once from static session data.
// A configured allocator wins, otherwise the voting asset decides.
func ResolveBackend(cfg SessionConfig) (Backend, error) {
	if cfg.Allocator != "" {
		if !cfg.Allocator.IsValid() {
			return nil, fmt.Errorf("%w: allocator %q is not an address", ErrUnsupportedBackend, cfg.Allocator)
		}
		return SelfManaged, nil
	}
	if !cfg.VotingToken.IsValid() {
		return nil, fmt.Errorf("%w: voting token %q is not an address", ErrUnsupportedBackend, cfg.VotingToken)
	}
	switch cfg.VotingAsset {
	case sdk.AssetERC721:
		return ProofBasedNFT, nil
	case sdk.AssetERC20:
		return TokenWeighted, nil
	}
	return nil, fmt.Errorf("%w: voting asset %q", ErrUnsupportedBackend, cfg.VotingAsset)
}

// BuildCall resolves the abi arguments and packs calldata for one batch.
func BuildCall(cfg SessionConfig, backend Backend, args *SubmissionArgs) (sdk.TxCall, error) {
	callArgs, err := backend.CallArgs(args)
	if err != nil {
		return sdk.TxCall{}, err
	}
	selector, data, err := packCall(backend.Method(), callArgs...)
	if err != nil {
		return sdk.TxCall{}, err
	}
	return sdk.TxCall{
		Contract: backend.Target(cfg),
		ChainID:  cfg.ChainID,
		Method:   backend.Method(),
		Selector: selector,
		Args:     callArgs,
		Data:     data,
		Account:  cfg.Holder,
	}, nil
}

// recipientAddresses requires every recipient id to be a hex address at call time.
// Ids are opaque in the set, so two spellings of one address only collide here.
func recipientAddresses(ids []RecipientID) ([]common.Address, error) {
	out := make([]common.Address, 0, len(ids))
	seen := make(map[common.Address]RecipientID, len(ids))
	for _, id := range ids {
		addr := sdk.Address(id)
		if !addr.IsValid() {
			return nil, fmt.Errorf("%w: %q is not an address", ErrInvalidRecipient, id)
		}
		c := addr.Common()
		if prev, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: %q and %q are the same address", ErrInvalidRecipient, prev, id)
		}
		seen[c] = id
		out = append(out, c)
	}
	return out, nil
}

func percentages(args *SubmissionArgs) []uint32 {
	if args.ScaledPercentages == nil {
		return []uint32{}
	}
	return args.ScaledPercentages
}

func allocationCallArgs(args *SubmissionArgs) ([]interface{}, error) {
	recipients, err := recipientAddresses(args.RecipientIDs)
	if err != nil {
		return nil, err
	}
	return []interface{}{recipients, percentages(args)}, nil
}

func proofCallArgs(args *SubmissionArgs) ([]interface{}, error) {
	recipients, err := recipientAddresses(args.RecipientIDs)
	if err != nil {
		return nil, err
	}
	if args.Proof == nil {
		return nil, fmt.Errorf("%w: no proof bundle attached", ErrProofFetchFailed)
	}
	owners := make([]common.Address, 0, len(args.OwnerGroups))
	tokenIDs := make([][]*big.Int, 0, len(args.OwnerGroups))
	for _, g := range args.OwnerGroups {
		owners = append(owners, g.Owner.Common())
		tokenIDs = append(tokenIDs, g.UnitIDs)
	}
	proofs := args.Proof.Proofs
	if proofs == nil {
		proofs = [][]byte{}
	}
	return []interface{}{
		owners,
		tokenIDs,
		recipients,
		percentages(args),
		new(big.Int).SetUint64(args.Proof.BlockNumber),
		[32]byte(args.Proof.StateRoot),
		proofs,
	}, nil
}
