package sdk

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// didPkhPrefix is the CAIP-10 flavour wallets sometimes hand us instead of plain hex.
const didPkhPrefix = "did:pkh:eip155:"

type AddressType string

const (
	AddressTypeEVM     AddressType = "evm"
	AddressTypeDID     AddressType = "did"
	AddressTypeUnknown AddressType = "unknown"
)

type Address string

// String returns the literal representation (like 0xabc.. or did:pkh:eip155:1:0xabc..) of the address.
// Example payload: sdk.Address("0x52908400098527886E0F7030069857D2E4169EE7").String()
func (a Address) String() string {
	return string(a)
}

// Hex strips the did:pkh chain prefix so the go-ethereum helpers get plain hex.
// Example payload: sdk.Address("did:pkh:eip155:10:0xabc").Hex()
func (a Address) Hex() string {
	s := strings.TrimSpace(a.String())
	if strings.HasPrefix(s, didPkhPrefix) {
		rest := s[len(didPkhPrefix):]
		if i := strings.LastIndex(rest, ":"); i >= 0 {
			return rest[i+1:]
		}
		return rest
	}
	return s
}

// Type inspects the prefix to categorize the address.
// Example payload: sdk.Address("did:pkh:eip155:1:0xabc").Type()
func (a Address) Type() AddressType {
	switch {
	case strings.HasPrefix(a.String(), didPkhPrefix) && common.IsHexAddress(a.Hex()):
		return AddressTypeDID
	case common.IsHexAddress(a.String()):
		return AddressTypeEVM
	default:
		return AddressTypeUnknown
	}
}

// IsValid returns false if the address type detection failed, used as a light sanity check.
// Example payload: sdk.Address("foo").IsValid()
func (a Address) IsValid() bool {
	return a.Type() != AddressTypeUnknown
}

// Common converts into the 20 byte go-ethereum form. Invalid input yields the zero address.
func (a Address) Common() common.Address {
	return common.HexToAddress(a.Hex())
}

// Key is the case-insensitive identity used for map keys and owner grouping,
// so 0xAbC.. and 0xabc.. land in the same bucket.
func (a Address) Key() string {
	if a.IsValid() {
		return strings.ToLower(a.Common().Hex())
	}
	return strings.TrimSpace(a.String())
}

// Equal compares two addresses by Key.
func (a Address) Equal(b Address) bool {
	return a.Key() == b.Key()
}

// AddressFromCommon wraps a go-ethereum address using its checksummed hex.
func AddressFromCommon(c common.Address) Address {
	return Address(c.Hex())
}
