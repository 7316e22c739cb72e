package votestore

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"okinoko_flowvote/sdk"
	"okinoko_flowvote/voting"
)

// DefaultCacheSize bounds the number of holders kept in memory.
const DefaultCacheSize = 256

// Cached is a read-through lru in front of another store. Invalidate drops the
// entry here and forwards to the inner store.
type Cached struct {
	inner Store
	lru   *lru.Cache[string, []voting.Allocation]
}

var (
	_ Store  = (*Cached)(nil)
	_ Writer = (*Cached)(nil)
)

// NewCached wraps inner. size <= 0 falls back to DefaultCacheSize.
func NewCached(inner Store, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []voting.Allocation](size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, lru: cache}, nil
}

func (c *Cached) RecordedVotes(ctx context.Context, contract, holder sdk.Address) ([]voting.Allocation, error) {
	key := Key(contract, holder)
	if allocs, ok := c.lru.Get(key); ok {
		return copyAllocations(allocs), nil
	}
	allocs, err := c.inner.RecordedVotes(ctx, contract, holder)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, copyAllocations(allocs))
	return allocs, nil
}

func (c *Cached) Invalidate(contract, holder sdk.Address) {
	c.lru.Remove(Key(contract, holder))
	c.inner.Invalidate(contract, holder)
}

// Record writes through when the inner store is a Writer and drops the cached entry.
func (c *Cached) Record(ctx context.Context, rec VoteRecord) error {
	defer c.lru.Remove(Key(rec.Contract, rec.Holder))
	w, ok := c.inner.(Writer)
	if !ok {
		return errors.New("inner store is read only")
	}
	return w.Record(ctx, rec)
}
