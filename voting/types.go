package voting

import (
	"math/big"

	"okinoko_flowvote/sdk"
)

// RecipientID identifies a funding recipient. Opaque to the allocation layer,
// the backends require a hex address when they build the call.
type RecipientID string

// String returns the raw id.
func (r RecipientID) String() string { return string(r) }

// Allocation is one recipient's share in basis points.
type Allocation struct {
	Recipient RecipientID
	Bps       uint32
}

// VotingPowerUnit is one NFT (owner + token id) or, with a nil UnitID, the
// singleton unit standing for a fungible holder's whole weight.
type VotingPowerUnit struct {
	Owner  sdk.Address
	UnitID *big.Int
}

// SingletonUnit wraps a fungible holder as a single unit.
// Example payload: SingletonUnit(sdk.Address("0xabc.."))
func SingletonUnit(holder sdk.Address) VotingPowerUnit {
	return VotingPowerUnit{Owner: holder}
}

// NFTUnit builds a token unit.
// Example payload: NFTUnit(sdk.Address("0xabc.."), 42)
func NFTUnit(owner sdk.Address, tokenID int64) VotingPowerUnit {
	return VotingPowerUnit{Owner: owner, UnitID: big.NewInt(tokenID)}
}

// IsSingleton reports whether the unit carries no token id.
func (u VotingPowerUnit) IsSingleton() bool {
	return u.UnitID == nil
}

// ScaledPercentage converts bps into the PercentageScale fixed point, rounding half up.
// Integer math only, so every bps that divides the scale maps exactly (2500 -> 250000).
// Example payload: ScaledPercentage(2500)
func ScaledPercentage(bps uint32) uint32 {
	return uint32((uint64(bps)*PercentageScale + MaxBps/2) / MaxBps)
}

// BackendKind is the tagged variant a session is bound to.
type BackendKind uint8

const (
	BackendUnspecified   BackendKind = 0
	BackendProofBasedNFT BackendKind = 1
	BackendTokenWeighted BackendKind = 2
	BackendSelfManaged   BackendKind = 3
)

// String prints short codes for events and logs.
// Example payload: BackendProofBasedNFT.String()
func (k BackendKind) String() string {
	switch k {
	case BackendProofBasedNFT:
		return "proof-nft"
	case BackendTokenWeighted:
		return "token"
	case BackendSelfManaged:
		return "self-managed"
	default:
		return "unspecified"
	}
}

// SessionState captures where the batch sequence currently is.
type SessionState uint8

const (
	StateIdle                 SessionState = 0
	StateActive               SessionState = 1
	StateSubmitting           SessionState = 2
	StateAwaitingConfirmation SessionState = 3
	StateCompleted            SessionState = 4
)

// String prints the state as lower-case text for events and logs.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateAwaitingConfirmation:
		return "awaiting"
	case StateCompleted:
		return "completed"
	default:
		return "unspecified"
	}
}
