package voting

import (
	"fmt"
	"strings"
	"time"

	"okinoko_flowvote/sdk"
)

// SessionConfig is the static data a session is built from. The backend is
// resolved from it once and never switched afterwards.
type SessionConfig struct {
	ChainID             uint64      `json:"chainId"`
	Contract            sdk.Address `json:"contract"`
	VotingToken         sdk.Address `json:"votingToken"`
	VotingAsset         sdk.Asset   `json:"votingAsset"`
	Allocator           sdk.Address `json:"allocator,omitempty"`
	Holder              sdk.Address `json:"holder"`
	ProofServiceURL     string      `json:"proofServiceUrl,omitempty"`
	ProofTimeoutSeconds uint64      `json:"proofTimeoutSeconds,omitempty"`
}

// Normalize trims inputs and fills fallbacks, same idea as normalizing project configs on create.
func (c *SessionConfig) Normalize() {
	c.Contract = sdk.Address(strings.TrimSpace(c.Contract.String()))
	c.VotingToken = sdk.Address(strings.TrimSpace(c.VotingToken.String()))
	c.Allocator = sdk.Address(strings.TrimSpace(c.Allocator.String()))
	c.Holder = sdk.Address(strings.TrimSpace(c.Holder.String()))
	c.VotingAsset = sdk.AssetFromString(c.VotingAsset.String())
	c.ProofServiceURL = strings.TrimRight(strings.TrimSpace(c.ProofServiceURL), "/")
	if c.ChainID == 0 {
		c.ChainID = FallbackChainID
	}
}

// Validate checks the addresses every backend needs.
func (c SessionConfig) Validate() error {
	if !c.Contract.IsValid() {
		return fmt.Errorf("invalid contract address %q", c.Contract)
	}
	if !c.Holder.IsValid() {
		return fmt.Errorf("invalid holder address %q", c.Holder)
	}
	return nil
}

// ProofTimeout returns the configured timeout or the fallback.
func (c SessionConfig) ProofTimeout() time.Duration {
	if c.ProofTimeoutSeconds == 0 {
		return FallbackProofTimeout
	}
	return time.Duration(c.ProofTimeoutSeconds) * time.Second
}
