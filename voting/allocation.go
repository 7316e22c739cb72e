package voting

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// -----------------------------------------------------------------------------
// Allocation Set
// -----------------------------------------------------------------------------

// AllocationSet is a holder's in-progress recipient -> bps mapping.
// Iteration follows first insertion, so encoded calls are reproducible.
// The sum of all bps is deliberately not capped here, the contract decides.
type AllocationSet struct {
	entries *linkedhashmap.Map
}

// NewAllocationSet seeds a set, e.g. from recorded votes. Zero entries are skipped,
// out of range ones fail the whole seed.
func NewAllocationSet(seed []Allocation) (*AllocationSet, error) {
	s := &AllocationSet{entries: linkedhashmap.New()}
	for _, a := range seed {
		if err := s.Update(a.Recipient, int(a.Bps)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Update upserts recipient with bps. bps == 0 removes the entry.
// Example payload: set.Update("0xabc..", 2500)
func (s *AllocationSet) Update(recipient RecipientID, bps int) error {
	recipient = RecipientID(strings.TrimSpace(recipient.String()))
	if recipient == "" {
		return fmt.Errorf("%w: empty recipient id", ErrInvalidRecipient)
	}
	if bps < 0 || bps > MaxBps {
		return fmt.Errorf("%w: %d bps for %s", ErrInvalidAllocationValue, bps, recipient)
	}
	if bps == 0 {
		s.entries.Remove(recipient)
		return nil
	}
	s.entries.Put(recipient, uint32(bps))
	return nil
}

// Get returns the bps for recipient, zero when absent.
func (s *AllocationSet) Get(recipient RecipientID) uint32 {
	v, ok := s.entries.Get(recipient)
	if !ok {
		return 0
	}
	return v.(uint32)
}

// TotalAllocatedBps sums every entry. Display only, may exceed MaxBps.
func (s *AllocationSet) TotalAllocatedBps() int {
	total := 0
	it := s.entries.Iterator()
	for it.Next() {
		total += int(it.Value().(uint32))
	}
	return total
}

// VotedRecipientCount counts entries with bps > 0, which is every stored entry.
func (s *AllocationSet) VotedRecipientCount() int {
	return s.entries.Size()
}

// Allocations lists entries in iteration order.
func (s *AllocationSet) Allocations() []Allocation {
	out := make([]Allocation, 0, s.entries.Size())
	it := s.entries.Iterator()
	for it.Next() {
		out = append(out, Allocation{
			Recipient: it.Key().(RecipientID),
			Bps:       it.Value().(uint32),
		})
	}
	return out
}

// Clone copies the set keeping order, so a submission can read it while the UI keeps editing.
func (s *AllocationSet) Clone() *AllocationSet {
	c := &AllocationSet{entries: linkedhashmap.New()}
	it := s.entries.Iterator()
	for it.Next() {
		c.entries.Put(it.Key(), it.Value())
	}
	return c
}

// Reset replaces every entry with seed. On a bad seed the set is left as it was.
func (s *AllocationSet) Reset(seed []Allocation) error {
	fresh, err := NewAllocationSet(seed)
	if err != nil {
		return err
	}
	s.entries = fresh.entries
	return nil
}
