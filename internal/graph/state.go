package graph

import (
	"fmt"
	"strings"
	"sync"

	"github.com/walletgraph/walletgraph/internal/domain"
)

// State is the owned, session-scoped graph state: identity indices, entities,
// ownership ledger, collector sets and pagination cursors behind one struct.
// There is no package-level mutable state; every component operation receives
// the State it works on.
//
// Concurrency: the mutex guards synchronous read-modify-write commits only.
// Callers must never hold it across provider I/O; the merge discipline is
// snapshot inputs, fetch, then apply the result as one synchronous update.
// Every mutation is idempotent or additive, so two in-flight operations may
// interleave between commits without violating any invariant.
type State struct {
	mu      sync.RWMutex
	version uint64

	profileIndex *Index
	nftIndex     *Index
	profiles     []*domain.Profile
	nfts         []*domain.NFT

	ledger     *Ledger
	collectors [][]string // per NFT entry: lowercased addresses fetched as its collectors
	cursors    *Cursors

	// contract -> NFT entry indices, maintained on admission so the
	// contract-sibling pass only walks tokens sharing a contract
	contractGroups map[string][]int

	primaryProfile int

	proj        *Projection
	projVersion uint64
}

// NewState creates an empty session graph state
func NewState() *State {
	s := &State{}
	s.init()
	return s
}

func (s *State) init() {
	s.profileIndex = NewIndex()
	s.nftIndex = NewIndex()
	s.profiles = nil
	s.nfts = nil
	s.ledger = NewLedger()
	s.collectors = nil
	s.cursors = NewCursors()
	s.contractGroups = make(map[string][]int)
	s.primaryProfile = -1
	s.proj = nil
	s.projVersion = 0
	s.version = 1
}

// Reset reinitializes every sub-store atomically
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
}

// Version returns the mutation counter; it advances on every committed change
func (s *State) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// AdmitProfile admits a profile under its address key. When the address is
// already known the call is a no-op on identity and the stored entity keeps
// its display fields, except that empty display fields are filled in from the
// candidate (enrichment may land after first reference). Returns the stable
// entry index and whether the entity was newly created.
func (s *State) AdmitProfile(p *domain.Profile) (int, bool, error) {
	key, err := domain.ProfileKey(p.Address)
	if err != nil {
		return 0, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, created := s.profileIndex.Admit(key)
	if created {
		stored := *p
		stored.Address = key
		s.profiles = append(s.profiles, &stored)
		if stored.Primary {
			s.primaryProfile = idx
		}
		s.version++
		return idx, true, nil
	}

	existing := s.profiles[idx]
	changed := false
	if existing.DisplayName == "" && p.DisplayName != "" {
		existing.DisplayName = p.DisplayName
		changed = true
	}
	if existing.AvatarURL == "" && p.AvatarURL != "" {
		existing.AvatarURL = p.AvatarURL
		changed = true
	}
	if existing.Bio == "" && p.Bio != "" {
		existing.Bio = p.Bio
		changed = true
	}
	if existing.Website == "" && p.Website != "" {
		existing.Website = p.Website
		changed = true
	}
	if changed {
		s.version++
	}
	return idx, false, nil
}

// AdmitNFT admits a token under its contract:tokenNumber key. Admitting the
// same key twice never creates two entities. Returns the stable entry index
// and whether the entity was newly created. Malformed keys are rejected with
// ErrInvalidIdentityKey so the caller can skip the record and continue.
func (s *State) AdmitNFT(n *domain.NFT) (int, bool, error) {
	key, err := n.Key()
	if err != nil {
		return 0, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, created := s.nftIndex.Admit(key.String())
	if !created {
		return idx, false, nil
	}

	stored := *n
	stored.ContractAddress = strings.ToLower(n.ContractAddress)
	s.nfts = append(s.nfts, &stored)
	s.ledger.Grow(len(s.nfts))
	s.collectors = append(s.collectors, nil)
	s.contractGroups[stored.ContractAddress] = append(s.contractGroups[stored.ContractAddress], idx)
	s.version++
	return idx, true, nil
}

// ResolveNFT returns the entry index for a token key
func (s *State) ResolveNFT(key domain.TokenKey) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nftIndex.Resolve(key.String())
}

// ResolveProfile returns the entry index for an address
func (s *State) ResolveProfile(address string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileIndex.Resolve(domain.NormalizeAddress(address))
}

// Profile returns the profile entity at an index
func (s *State) Profile(idx int) *domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 0 || idx >= len(s.profiles) {
		panic(fmt.Sprintf("graph: profile index %d out of range [0,%d)", idx, len(s.profiles)))
	}
	return s.profiles[idx]
}

// NFT returns the token entity at an index
func (s *State) NFT(idx int) *domain.NFT {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 0 || idx >= len(s.nfts) {
		panic(fmt.Sprintf("graph: NFT index %d out of range [0,%d)", idx, len(s.nfts)))
	}
	return s.nfts[idx]
}

// RecordOwnership adds an ownership fact. Idempotent; owner sets only grow.
func (s *State) RecordOwnership(nftIdx int, profileIdx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profileIdx >= len(s.profiles) {
		panic(fmt.Sprintf("graph: profile index %d out of range [0,%d)", profileIdx, len(s.profiles)))
	}
	if s.ledger.Record(nftIdx, profileIdx) {
		s.version++
	}
}

// Owners returns the sorted owner set of an NFT entry
func (s *State) Owners(nftIdx int) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Owners(nftIdx)
}

// ExtendCollectors appends fetched collector addresses to an NFT's collector
// set, lowercased, skipping addresses already in the set.
func (s *State) ExtendCollectors(nftIdx int, addresses []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nftIdx < 0 || nftIdx >= len(s.collectors) {
		panic(fmt.Sprintf("graph: NFT index %d out of range [0,%d)", nftIdx, len(s.collectors)))
	}
	seen := make(map[string]struct{}, len(s.collectors[nftIdx]))
	for _, addr := range s.collectors[nftIdx] {
		seen[addr] = struct{}{}
	}
	changed := false
	for _, address := range addresses {
		addr := domain.NormalizeAddress(address)
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		s.collectors[nftIdx] = append(s.collectors[nftIdx], addr)
		changed = true
	}
	if changed {
		s.version++
	}
}

// Collectors returns the collector set of an NFT entry
func (s *State) Collectors(nftIdx int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if nftIdx < 0 || nftIdx >= len(s.collectors) {
		panic(fmt.Sprintf("graph: NFT index %d out of range [0,%d)", nftIdx, len(s.collectors)))
	}
	return s.collectors[nftIdx]
}

// KnownAddresses returns the lowercased addresses of every materialized
// profile: the primary plus all collectors discovered so far, across all NFTs.
func (s *State) KnownAddresses() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	known := make(map[string]struct{}, len(s.profiles))
	for _, p := range s.profiles {
		known[p.Address] = struct{}{}
	}
	return known
}

// PageState returns the recorded pagination state for a subject
func (s *State) PageState(subject string) (PageState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursors.Get(subject)
}

// SetPageState records the pagination state for a subject
func (s *State) SetPageState(subject string, cursor string, hasMore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors.Set(subject, cursor, hasMore)
	s.version++
}

// CanFetchMore reports whether another page may be fetched for a subject
func (s *State) CanFetchMore(subject string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursors.CanFetchMore(subject)
}

// Projection derives the renderable node/link set from current state. The
// result is memoized on the state version: repeated calls without intervening
// mutations return the same value without recomputation.
func (s *State) Projection() *Projection {
	s.mu.RLock()
	if s.proj != nil && s.projVersion == s.version {
		p := s.proj
		s.mu.RUnlock()
		return p
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proj == nil || s.projVersion != s.version {
		s.proj = s.buildProjection()
		s.projVersion = s.version
	}
	return s.proj
}

// buildProjection is a pure function of current state. Callers hold the lock.
func (s *State) buildProjection() *Projection {
	nodes := make([]Node, 0, len(s.profiles)+len(s.nfts))

	for idx, p := range s.profiles {
		ref := Ref{Kind: NodeKindProfile, Index: idx}
		label := p.DisplayName
		if label == "" {
			label = p.Address
		}
		nodes = append(nodes, Node{
			ID:           ref.ID(),
			Kind:         NodeKindProfile,
			DisplayLabel: label,
			ImageURL:     p.AvatarURL,
			Ref:          ref,
		})
	}

	for idx, n := range s.nfts {
		ref := Ref{Kind: NodeKindNFT, Index: idx}
		label := n.Name
		if label == "" {
			label = fmt.Sprintf("%s #%s", n.ContractAddress, n.TokenNumber)
		}
		nodes = append(nodes, Node{
			ID:           ref.ID(),
			Kind:         NodeKindNFT,
			DisplayLabel: label,
			ImageURL:     n.ImageURL,
			Ref:          ref,
		})
	}

	links := newLinkSet(nodes)

	// Pass 1: ownership links. NFTs with an empty owner set (contract
	// expansion) stay unlinked until an ownership fact is recorded.
	for nftIdx := range s.nfts {
		nftID := Ref{Kind: NodeKindNFT, Index: nftIdx}.ID()
		for _, ownerIdx := range s.ledger.Owners(nftIdx) {
			links.add(Ref{Kind: NodeKindProfile, Index: ownerIdx}.ID(), nftID, LinkKindOwnership)
		}
	}

	// Pass 2: contract-sibling links, pairwise within each contract group
	for _, group := range s.contractGroups {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				links.add(
					Ref{Kind: NodeKindNFT, Index: group[i]}.ID(),
					Ref{Kind: NodeKindNFT, Index: group[j]}.ID(),
					LinkKindContractSibling,
				)
			}
		}
	}

	// Pass 3: collector links for addresses with a materialized profile.
	// Collectors are owners, so these collapse with pass 1 via triple dedup;
	// addresses without a profile node yet are omitted (no dangling edges).
	for nftIdx, addrs := range s.collectors {
		nftID := Ref{Kind: NodeKindNFT, Index: nftIdx}.ID()
		for _, addr := range addrs {
			profileIdx, ok := s.profileIndex.Resolve(addr)
			if !ok {
				continue
			}
			links.add(Ref{Kind: NodeKindProfile, Index: profileIdx}.ID(), nftID, LinkKindOwnership)
		}
	}

	return &Projection{Nodes: nodes, Links: links.links}
}
