package voting

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"okinoko_flowvote/sdk"
)

// splitList allows comma or semicolon separators and drops empty parts.
func splitList(val string) []string {
	raw := strings.FieldsFunc(strings.TrimSpace(val), func(r rune) bool {
		return r == ',' || r == ';'
	})
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// splitPair cuts at the last ':' since did:pkh addresses carry colons themselves.
func splitPair(val string) (string, string, bool) {
	i := strings.LastIndex(val, ":")
	if i <= 0 || i == len(val)-1 {
		return "", "", false
	}
	return strings.TrimSpace(val[:i]), strings.TrimSpace(val[i+1:]), true
}

// ParseAllocations reads `recipient:bps` pairs, e.g. "0xabc:2500,0xdef:5000".
// A value with a % suffix is read as a percentage with at most two decimals ("25.5%" -> 2550).
// Example payload: ParseAllocations("0xabc:2500;0xdef:50%")
func ParseAllocations(val string) ([]Allocation, error) {
	parts := splitList(val)
	out := make([]Allocation, 0, len(parts))
	for _, part := range parts {
		recipient, raw, ok := splitPair(part)
		if !ok {
			return nil, fmt.Errorf("%w: %q (use recipient:bps)", ErrInvalidAllocationValue, part)
		}
		bps, err := parseBpsField(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", recipient, err)
		}
		out = append(out, Allocation{Recipient: RecipientID(recipient), Bps: bps})
	}
	return out, nil
}

// parseBpsField accepts an integer bps or an exact percentage.
func parseBpsField(val string) (uint32, error) {
	val = strings.TrimSpace(val)
	if strings.HasSuffix(val, "%") {
		return parsePercentField(strings.TrimSpace(strings.TrimSuffix(val, "%")))
	}
	n, err := strconv.ParseUint(val, 10, 32)
	if err != nil || n > MaxBps {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAllocationValue, val)
	}
	return uint32(n), nil
}

func parsePercentField(val string) (uint32, error) {
	whole, frac, _ := strings.Cut(val, ".")
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q%% has more than two decimals", ErrInvalidAllocationValue, val)
	}
	frac += strings.Repeat("0", 2-len(frac))
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q%%", ErrInvalidAllocationValue, val)
	}
	f, err := strconv.ParseUint(frac, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q%%", ErrInvalidAllocationValue, val)
	}
	bps := w*100 + f
	if bps > MaxBps {
		return 0, fmt.Errorf("%w: %q%%", ErrInvalidAllocationValue, val)
	}
	return uint32(bps), nil
}

// ParseUnits reads `owner:tokenId` pairs into NFT units, order preserved.
// Example payload: ParseUnits("0xa:1,0xb:2,0xa:3")
func ParseUnits(val string) ([]VotingPowerUnit, error) {
	parts := splitList(val)
	out := make([]VotingPowerUnit, 0, len(parts))
	for _, part := range parts {
		owner, raw, ok := splitPair(part)
		if !ok {
			return nil, fmt.Errorf("invalid unit %q (use owner:tokenId)", part)
		}
		unit, err := newUnit(owner, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, unit)
	}
	return out, nil
}

func newUnit(owner string, tokenID string) (VotingPowerUnit, error) {
	addr := sdk.Address(owner)
	if !addr.IsValid() {
		return VotingPowerUnit{}, fmt.Errorf("%w: owner %q is not an address", ErrInvalidUnit, owner)
	}
	id, ok := new(big.Int).SetString(strings.TrimSpace(tokenID), 0)
	if !ok || id.Sign() < 0 {
		return VotingPowerUnit{}, fmt.Errorf("%w: token id %q", ErrInvalidUnit, tokenID)
	}
	return VotingPowerUnit{Owner: addr, UnitID: id}, nil
}
