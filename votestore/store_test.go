package votestore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"okinoko_flowvote/sdk"
	"okinoko_flowvote/voting"
)

const (
	contractAddr = "0x9999999999999999999999999999999999999999"
	holderAddr   = "0x1111111111111111111111111111111111111111"
	recipientA   = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	recipientB   = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func sampleRecord() VoteRecord {
	return VoteRecord{
		Contract:    sdk.Address(contractAddr),
		Holder:      sdk.Address(holderAddr),
		BlockNumber: 991,
		UpdatedAt:   1700000000,
		Allocations: []voting.Allocation{
			{Recipient: recipientB, Bps: 5000},
			{Recipient: recipientA, Bps: 2500},
		},
	}
}

// countingStore records how often the inner store is read.
type countingStore struct {
	mu          sync.Mutex
	reads       int
	invalidated int
	votes       []voting.Allocation
}

func (c *countingStore) RecordedVotes(context.Context, sdk.Address, sdk.Address) ([]voting.Allocation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	return copyAllocations(c.votes), nil
}

func (c *countingStore) Invalidate(sdk.Address, sdk.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
}

func TestKeyNormalizesAddresses(t *testing.T) {
	upper := sdk.Address("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	did := sdk.Address("did:pkh:eip155:10:" + holderAddr)
	assert.Equal(t, Key(upper, sdk.Address(holderAddr)), Key(sdk.Address(recipientA), did))
	assert.Equal(t, "votes|"+recipientA+"|"+holderAddr, Key(upper, did))
}
