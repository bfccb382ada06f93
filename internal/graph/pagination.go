package graph

import (
	"fmt"
	"strings"

	"github.com/walletgraph/walletgraph/internal/domain"
)

// PageState holds the continuation state of one logical paginated collection.
// Cursors are opaque strings from the upstream source; no ordering or
// comparison is ever performed on them.
type PageState struct {
	Cursor  string
	HasMore bool
}

// Cursors tracks pagination state per subject key. It is a pure state
// container and performs no I/O. Absence of an entry means the first page has
// not been fetched yet.
type Cursors struct {
	states map[string]PageState
}

// NewCursors creates an empty cursor manager
func NewCursors() *Cursors {
	return &Cursors{states: make(map[string]PageState)}
}

// Get returns the recorded state for a subject
func (c *Cursors) Get(subject string) (PageState, bool) {
	st, ok := c.states[subject]
	return st, ok
}

// Set records the continuation state for a subject
func (c *Cursors) Set(subject string, cursor string, hasMore bool) {
	c.states[subject] = PageState{Cursor: cursor, HasMore: hasMore}
}

// CanFetchMore reports whether another page may be fetched for a subject:
// true when no state was recorded yet, or when the last page said hasMore.
func (c *Cursors) CanFetchMore(subject string) bool {
	st, ok := c.states[subject]
	if !ok {
		return true
	}
	return st.HasMore
}

// OwnerSubject keys the paginated NFT listing of a wallet
func OwnerSubject(address string) string {
	return fmt.Sprintf("owner:%s", domain.NormalizeAddress(address))
}

// CollectorSubject keys the paginated collector listing of a token
func CollectorSubject(key domain.TokenKey) string {
	return fmt.Sprintf("collectors:%s", key)
}

// ContractSubject keys the paginated NFT listing of a contract
func ContractSubject(contractAddress string) string {
	return fmt.Sprintf("contract:%s", strings.ToLower(contractAddress))
}
