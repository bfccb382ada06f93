package graph

import (
	"fmt"
	"sort"
)

// Ledger tracks, per NFT entry, the set of owning profile indices. Ownership
// is modeled uniformly as a set from the first fact on: the single-owner case
// is the multi-owner case with cardinality 1. Sets only grow; there is no
// operation that removes an owner during a session.
type Ledger struct {
	owners []map[int]struct{}
}

// NewLedger creates an empty ownership ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Grow extends the ledger to cover n NFT entries. New entries start with an
// empty owner set (the contract-expansion case).
func (l *Ledger) Grow(n int) {
	for len(l.owners) < n {
		l.owners = append(l.owners, nil)
	}
}

// Record adds an owning profile to an NFT's owner set. Recording the same pair
// twice is a no-op. Returns true when the fact was new.
//
// Out-of-range indices indicate a caller bug and panic.
func (l *Ledger) Record(nftIdx int, profileIdx int) bool {
	l.check(nftIdx)
	if profileIdx < 0 {
		panic(fmt.Sprintf("graph: negative profile index %d", profileIdx))
	}
	if l.owners[nftIdx] == nil {
		l.owners[nftIdx] = make(map[int]struct{})
	}
	if _, ok := l.owners[nftIdx][profileIdx]; ok {
		return false
	}
	l.owners[nftIdx][profileIdx] = struct{}{}
	return true
}

// Owners returns the sorted owner set of an NFT entry
func (l *Ledger) Owners(nftIdx int) []int {
	l.check(nftIdx)
	set := l.owners[nftIdx]
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// HasOwners reports whether any ownership fact was recorded for an NFT entry
func (l *Ledger) HasOwners(nftIdx int) bool {
	l.check(nftIdx)
	return len(l.owners[nftIdx]) > 0
}

// Len returns the number of covered NFT entries
func (l *Ledger) Len() int {
	return len(l.owners)
}

func (l *Ledger) check(nftIdx int) {
	if nftIdx < 0 || nftIdx >= len(l.owners) {
		panic(fmt.Sprintf("graph: NFT index %d out of range [0,%d)", nftIdx, len(l.owners)))
	}
}
