package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/walletgraph/walletgraph/internal/config"
	"github.com/walletgraph/walletgraph/internal/domain"
	"github.com/walletgraph/walletgraph/internal/enrichment"
	"github.com/walletgraph/walletgraph/internal/graph"
	"github.com/walletgraph/walletgraph/internal/logger"
	"github.com/walletgraph/walletgraph/internal/providers/chainindex"
	"github.com/walletgraph/walletgraph/internal/providers/marketplace"
	"github.com/walletgraph/walletgraph/internal/registry"
)

// Session is one wallet-centric graph accumulation session
type Session struct {
	ID             string
	PrimaryAddress string
	CreatedAt      time.Time

	state   *graph.State
	primary *domain.Profile
}

// MergeResult summarizes the effect of one fetch-and-merge operation
type MergeResult struct {
	Admitted   int  `json:"admitted"`
	Duplicates int  `json:"duplicates"`
	Skipped    int  `json:"skipped"`
	HasMore    bool `json:"has_more"`
}

// Service coordinates fetch-and-merge operations against per-session graph
// state. Provider I/O always happens outside the state lock: inputs are
// snapshotted, the fetch suspends, and the result is applied as a synchronous
// commit. All commits are idempotent or additive, so concurrent operations on
// the same session interleave safely.
type Service struct {
	marketplace marketplace.Client
	chainindex  chainindex.Client
	enricher    *enrichment.Resolver
	blocklist   registry.Blocklist
	fetch       config.FetchConfig

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a session service. The blocklist may be nil, in which
// case no contract is blocked.
func NewService(mk marketplace.Client, ci chainindex.Client, enricher *enrichment.Resolver, blocklist registry.Blocklist, fetch config.FetchConfig) *Service {
	return &Service{
		marketplace: mk,
		chainindex:  ci,
		enricher:    enricher,
		blocklist:   blocklist,
		fetch:       fetch,
		sessions:    make(map[string]*Session),
	}
}

// blocked reports whether a contract is on the configured blocklist
func (s *Service) blocked(contractAddress string) bool {
	return s.blocklist != nil && s.blocklist.IsBlocked(contractAddress)
}

// Start creates a session for a wallet address and admits its primary
// profile. ProfileNotFound is not an error; the fallback identity is used.
func (s *Service) Start(ctx context.Context, address string) (*Session, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: bad address %q", domain.ErrInvalidIdentityKey, address)
	}
	addr := domain.NormalizeAddress(address)

	res := s.enricher.Resolve(ctx, addr)
	primary := res.Profile
	primary.Primary = true

	sess := &Session{
		ID:             uuid.NewString(),
		PrimaryAddress: addr,
		CreatedAt:      time.Now(),
		state:          graph.NewState(),
		primary:        primary,
	}
	if _, _, err := sess.state.AdmitProfile(primary); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	logger.InfoCtx(ctx, "session started",
		zap.String("session_id", sess.ID),
		zap.String("address", addr),
		zap.Bool("fallback_profile", res.Fallback),
	)
	return sess, nil
}

// Get returns a session by ID
func (s *Service) Get(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// End removes a session
func (s *Service) End(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// Reset reinitializes a session's graph state and re-admits the primary
// profile from its cached entity, without any provider call.
func (s *Service) Reset(sessionID string) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	sess.state.Reset()
	if _, _, err := sess.state.AdmitProfile(sess.primary); err != nil {
		return err
	}
	return nil
}

// Projection returns the current renderable node/link set for a session
func (s *Service) Projection(sessionID string) (*graph.Projection, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.state.Projection(), nil
}

// FetchOwnedNFTs merges the next page of the primary wallet's NFTs. When the
// subject's pagination says there is nothing more, the call is a no-op.
func (s *Service) FetchOwnedNFTs(ctx context.Context, sessionID string) (*MergeResult, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	subject := graph.OwnerSubject(sess.PrimaryAddress)
	if !sess.state.CanFetchMore(subject) {
		return &MergeResult{HasMore: false}, nil
	}
	cursor, _ := sess.state.PageState(subject)

	page, err := s.marketplace.GetOwnedNFTs(ctx, sess.PrimaryAddress, cursor.Cursor, s.fetch.NFTFetchLimit)
	if err != nil {
		return nil, err
	}

	primaryIdx, ok := sess.state.ResolveProfile(sess.PrimaryAddress)
	if !ok {
		// The primary is admitted at Start and re-admitted on Reset
		panic("session: primary profile not materialized")
	}

	result := &MergeResult{HasMore: page.HasMore()}
	for i := range page.Items {
		if s.blocked(page.Items[i].ContractAddress) {
			result.Skipped++
			continue
		}
		idx, created, err := sess.state.AdmitNFT(&page.Items[i])
		if err != nil {
			if errors.Is(err, domain.ErrInvalidIdentityKey) {
				logger.WarnCtx(ctx, "skipping NFT with malformed identity key",
					zap.String("contract", page.Items[i].ContractAddress),
					zap.String("token_number", page.Items[i].TokenNumber),
				)
				result.Skipped++
				continue
			}
			return nil, err
		}
		if created {
			result.Admitted++
		} else {
			result.Duplicates++
		}
		sess.state.RecordOwnership(idx, primaryIdx)
	}
	sess.state.SetPageState(subject, page.NextCursor, page.HasMore())

	return result, nil
}

// FetchCollectors merges the next page of collector addresses for a token the
// session already tracks. Accepted addresses are enriched concurrently, then
// committed: profile admission, ownership facts and the collector set extend
// in one synchronous pass.
func (s *Service) FetchCollectors(ctx context.Context, sessionID string, contractAddress string, tokenNumber string) (*MergeResult, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	key, err := domain.NewTokenKey(contractAddress, tokenNumber)
	if err != nil {
		return nil, err
	}
	nftIdx, ok := sess.state.ResolveNFT(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTokenNotTracked, key)
	}

	subject := graph.CollectorSubject(key)
	if !sess.state.CanFetchMore(subject) {
		return &MergeResult{HasMore: false}, nil
	}
	cursor, _ := sess.state.PageState(subject)

	page, err := s.chainindex.GetCollectors(ctx, contractAddress, tokenNumber, cursor.Cursor, s.fetch.CollectorFetchLimit)
	if err != nil {
		return nil, err
	}

	// Snapshot the known set, filter, then enrich outside the state lock
	filtered := graph.FilterCollectors(page.Owners, sess.state.KnownAddresses())
	resolutions := s.enricher.ResolveBatch(ctx, filtered.Accepted)

	result := &MergeResult{Duplicates: filtered.DuplicateCount, HasMore: page.HasMore}
	for _, res := range resolutions {
		_, created, err := sess.state.AdmitProfile(res.Profile)
		if err != nil {
			// Accepted addresses were already validated by the filter input
			logger.WarnCtx(ctx, "skipping collector with malformed address",
				zap.String("address", res.Address),
			)
			result.Skipped++
			continue
		}
		if created {
			result.Admitted++
		}
	}

	// Every fetched collector with a materialized profile is an owner of this
	// token, including those deduplicated against profiles discovered via
	// other NFTs.
	sess.state.ExtendCollectors(nftIdx, page.Owners)
	for _, addr := range page.Owners {
		if profileIdx, ok := sess.state.ResolveProfile(addr); ok {
			sess.state.RecordOwnership(nftIdx, profileIdx)
		}
	}
	sess.state.SetPageState(subject, page.NextCursor, page.HasMore)

	return result, nil
}

// ExpandContract merges the next page of a contract's NFTs. Tokens admitted
// this way have no recorded owner and stay unlinked from any profile until an
// ownership fact arrives for them.
func (s *Service) ExpandContract(ctx context.Context, sessionID string, contractAddress string) (*MergeResult, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("%w: bad contract address %q", domain.ErrInvalidIdentityKey, contractAddress)
	}
	if s.blocked(contractAddress) {
		return nil, fmt.Errorf("%w: %s", domain.ErrContractBlocked, domain.NormalizeAddress(contractAddress))
	}

	subject := graph.ContractSubject(contractAddress)
	if !sess.state.CanFetchMore(subject) {
		return &MergeResult{HasMore: false}, nil
	}
	cursor, _ := sess.state.PageState(subject)

	page, err := s.chainindex.GetContractNFTs(ctx, contractAddress, cursor.Cursor, s.fetch.ContractExpandLimit)
	if err != nil {
		return nil, err
	}

	result := &MergeResult{HasMore: page.HasMore()}
	for i := range page.Items {
		_, created, err := sess.state.AdmitNFT(&page.Items[i])
		if err != nil {
			if errors.Is(err, domain.ErrInvalidIdentityKey) {
				logger.WarnCtx(ctx, "skipping NFT with malformed identity key",
					zap.String("contract", page.Items[i].ContractAddress),
					zap.String("token_number", page.Items[i].TokenNumber),
				)
				result.Skipped++
				continue
			}
			return nil, err
		}
		if created {
			result.Admitted++
		} else {
			result.Duplicates++
		}
	}
	sess.state.SetPageState(subject, page.NextCursor, page.HasMore())

	return result, nil
}

// State exposes the session's graph state for read access in tests and views
func (sess *Session) State() *graph.State {
	return sess.state
}
