package sdk

import "strings"

// Asset names the token standard a flow is voting-weighted by.
type Asset string

const (
	AssetERC721 Asset = "erc721"
	AssetERC20  Asset = "erc20"
)

// String returns the raw standard name for logging or config files.
// Example payload: sdk.AssetERC721.String()
func (a Asset) String() string {
	return string(a)
}

// AssetFromString lower-cases and trims, so "ERC721 " still resolves.
// Example payload: sdk.AssetFromString("ERC20")
func AssetFromString(s string) Asset {
	return Asset(strings.ToLower(strings.TrimSpace(s)))
}
