package proofs

//tinyjson:json
type proofRequest struct {
	ChainID  uint64      `json:"chainId"`
	Contract string      `json:"contract"`
	Batch    int         `json:"batch"`
	Units    []proofUnit `json:"units"`
}

//tinyjson:json
type proofUnit struct {
	Owner   string `json:"owner"`
	TokenID string `json:"tokenId"`
}

// proofResponse is what the service answers. Every field is checked,
// the service is not trusted.
//
//tinyjson:json
type proofResponse struct {
	BlockNumber uint64   `json:"blockNumber"`
	StateRoot   string   `json:"stateRoot"`
	Proofs      []string `json:"proofs"`
}
