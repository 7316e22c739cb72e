package proofs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CosmWasm/tinyjson"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gofiber/fiber/v2"

	"okinoko_flowvote/sdk"
	"okinoko_flowvote/voting"
)

// Config points a Client at one proof service for one voting contract.
type Config struct {
	BaseURL  string
	ChainID  uint64
	Contract sdk.Address
	Timeout  time.Duration
}

// ConfigFromSession takes url, chain, contract and timeout from a session config.
func ConfigFromSession(cfg voting.SessionConfig) Config {
	return Config{
		BaseURL:  cfg.ProofServiceURL,
		ChainID:  cfg.ChainID,
		Contract: cfg.Contract,
		Timeout:  cfg.ProofTimeout(),
	}
}

// Client fetches ownership proofs per batch over http.
type Client struct {
	cfg Config
}

var _ voting.ProofFetcher = (*Client)(nil)

// NewClient checks the base url and fills the timeout fallback.
func NewClient(cfg Config) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, errors.New("proof service url is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = voting.FallbackProofTimeout
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = voting.FallbackChainID
	}
	return &Client{cfg: cfg}, nil
}

type fetchResult struct {
	code int
	body []byte
	err  error
}

// FetchProofs posts the batch units to {base}/proofs and validates the answer.
// Example payload: {"chainId":10,"contract":"0x..","batch":0,"units":[{"owner":"0x..","tokenId":"12"}]}
func (c *Client) FetchProofs(ctx context.Context, batchIndex int, units []voting.VotingPowerUnit) (*voting.ProofBundle, error) {
	req := proofRequest{
		ChainID:  c.cfg.ChainID,
		Contract: c.cfg.Contract.Hex(),
		Batch:    batchIndex,
		Units:    make([]proofUnit, 0, len(units)),
	}
	for _, u := range units {
		tokenID := ""
		if u.UnitID != nil {
			tokenID = u.UnitID.String()
		}
		req.Units = append(req.Units, proofUnit{Owner: u.Owner.Hex(), TokenID: tokenID})
	}
	body, err := tinyjson.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode proof request: %w", err)
	}

	done := make(chan fetchResult, 1)
	go func() {
		agent := fiber.Post(c.cfg.BaseURL + "/proofs").
			Timeout(c.cfg.Timeout).
			ContentType(fiber.MIMEApplicationJSON).
			Body(body)
		code, resp, errs := agent.Bytes()
		done <- fetchResult{code: code, body: resp, err: errors.Join(errs...)}
	}()

	var res fetchResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("proof service: %w", res.err)
	}
	if res.code < 200 || res.code > 299 {
		return nil, fmt.Errorf("proof service returned status %d", res.code)
	}
	sdk.Verbose("proofs|b:%d|u:%d|bytes:%d", batchIndex, len(units), len(res.body))
	return decodeBundle(batchIndex, len(units), res.body)
}

// decodeBundle turns the raw response into a bundle, failing on anything partial.
// One proof per requested unit is the minimum.
func decodeBundle(batchIndex, units int, data []byte) (*voting.ProofBundle, error) {
	var resp proofResponse
	if err := tinyjson.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("malformed proof response: %w", err)
	}
	if len(resp.Proofs) == 0 {
		return nil, errors.New("proof response has no proofs")
	}
	if len(resp.Proofs) < units {
		return nil, fmt.Errorf("proof response has %d proof(s) for %d unit(s)", len(resp.Proofs), units)
	}
	root, err := hexutil.Decode(resp.StateRoot)
	if err != nil || len(root) != common.HashLength {
		return nil, fmt.Errorf("invalid state root %q", resp.StateRoot)
	}
	bundle := &voting.ProofBundle{
		BatchIndex:  batchIndex,
		BlockNumber: resp.BlockNumber,
		StateRoot:   common.BytesToHash(root),
		Proofs:      make([][]byte, 0, len(resp.Proofs)),
	}
	for i, p := range resp.Proofs {
		raw, err := hexutil.Decode(p)
		if err != nil {
			return nil, fmt.Errorf("invalid proof %d: %w", i, err)
		}
		bundle.Proofs = append(bundle.Proofs, raw)
	}
	return bundle, nil
}
