package session_test

import (
	"context"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletgraph/walletgraph/internal/adapter"
	"github.com/walletgraph/walletgraph/internal/config"
	"github.com/walletgraph/walletgraph/internal/domain"
	"github.com/walletgraph/walletgraph/internal/enrichment"
	"github.com/walletgraph/walletgraph/internal/graph"
	"github.com/walletgraph/walletgraph/internal/logger"
	"github.com/walletgraph/walletgraph/internal/mocks"
	"github.com/walletgraph/walletgraph/internal/registry"
	"github.com/walletgraph/walletgraph/internal/session"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const (
	addrPrimary   = "0x1111111111111111111111111111111111111111"
	addrCollector = "0x2222222222222222222222222222222222222222"
	contractA     = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	contractB     = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

type testEnv struct {
	marketplace *mocks.MockMarketplaceClient
	chainindex  *mocks.MockChainIndexClient
	source      *mocks.MockEnrichmentSource
	blocklist   registry.Blocklist
	svc         *session.Service
}

func setup(t *testing.T, opts ...func(*testEnv)) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	env := &testEnv{
		marketplace: mocks.NewMockMarketplaceClient(ctrl),
		chainindex:  mocks.NewMockChainIndexClient(ctrl),
		source:      mocks.NewMockEnrichmentSource(ctrl),
	}
	for _, opt := range opts {
		opt(env)
	}

	enricher := enrichment.NewResolver(env.source, 2)
	t.Cleanup(enricher.Close)

	env.svc = session.NewService(env.marketplace, env.chainindex, enricher, env.blocklist, config.FetchConfig{
		NFTFetchLimit:       12,
		CollectorFetchLimit: 10,
		ContractExpandLimit: 12,
	})
	return env
}

// startSession starts a session whose primary profile resolves to the fallback
func startSession(t *testing.T, env *testEnv) *session.Session {
	t.Helper()
	env.source.EXPECT().
		GetProfile(gomock.Any(), addrPrimary).
		Return(nil, domain.ErrProfileNotFound)

	sess, err := env.svc.Start(context.Background(), addrPrimary)
	require.NoError(t, err)
	return sess
}

func nft(contract, tokenNumber string) domain.NFT {
	return domain.NFT{ContractAddress: contract, TokenNumber: tokenNumber}
}

func countLinks(p *graph.Projection, kind graph.LinkKind) int {
	n := 0
	for _, l := range p.Links {
		if l.Kind == kind {
			n++
		}
	}
	return n
}

func TestService_Start(t *testing.T) {
	env := setup(t)

	env.source.EXPECT().
		GetProfile(gomock.Any(), addrPrimary).
		Return(&domain.Profile{Address: addrPrimary, DisplayName: "alice"}, nil)

	// Mixed-case input normalizes to the canonical session address
	sess, err := env.svc.Start(context.Background(), "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, addrPrimary, sess.PrimaryAddress)

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	require.Len(t, proj.Nodes, 1)
	assert.Equal(t, graph.NodeKindProfile, proj.Nodes[0].Kind)
	assert.Equal(t, "alice", proj.Nodes[0].DisplayLabel)
}

func TestService_Start_InvalidAddress(t *testing.T) {
	env := setup(t)

	_, err := env.svc.Start(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentityKey)
}

func TestService_Start_FallbackPrimary(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	require.Len(t, proj.Nodes, 1)
	assert.Equal(t, "0x1111...1111", proj.Nodes[0].DisplayLabel)
	assert.Equal(t, "https://api.dicebear.com/7.x/identicon/svg?seed="+addrPrimary, proj.Nodes[0].ImageURL)
}

func TestService_GetEnd(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	got, err := env.svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	require.NoError(t, env.svc.End(sess.ID))

	_, err = env.svc.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, env.svc.End(sess.ID), domain.ErrSessionNotFound)
}

func TestService_UnknownSession(t *testing.T) {
	env := setup(t)

	_, err := env.svc.Projection("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = env.svc.FetchOwnedNFTs(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.ErrorIs(t, env.svc.Reset("nope"), domain.ErrSessionNotFound)
}

func TestService_FetchOwnedNFTs_AccumulatesAcrossPages(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	// Page 1: two tokens, more to come
	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{
			Items:      []domain.NFT{nft(contractA, "1"), nft(contractB, "2")},
			NextCursor: "p2",
		}, nil)

	result, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Admitted)
	assert.Equal(t, 0, result.Duplicates)
	assert.True(t, result.HasMore)

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	assert.Len(t, proj.Nodes, 3)
	assert.Equal(t, 2, countLinks(proj, graph.LinkKindOwnership))

	// Page 2: one new token plus a replay of an earlier one, last page
	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "p2", 12).
		Return(&domain.NFTPage{
			Items: []domain.NFT{nft(contractB, "3"), nft(contractA, "1")},
		}, nil)

	result, err = env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Admitted)
	assert.Equal(t, 1, result.Duplicates)
	assert.False(t, result.HasMore)

	proj, err = env.svc.Projection(sess.ID)
	require.NoError(t, err)
	assert.Len(t, proj.Nodes, 4)
	assert.Equal(t, 3, countLinks(proj, graph.LinkKindOwnership))
	// Both contractB tokens are siblings
	assert.Equal(t, 1, countLinks(proj, graph.LinkKindContractSibling))

	// Pagination exhausted: no further provider call happens
	result, err = env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Admitted)
	assert.False(t, result.HasMore)
}

func TestService_FetchOwnedNFTs_SkipsMalformedRecords(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{
			Items: []domain.NFT{
				nft(contractA, "1"),
				nft("garbage", "2"),
				nft(contractA, "abc"),
			},
		}, nil)

	result, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Admitted)
	assert.Equal(t, 2, result.Skipped)
}

func TestService_FetchOwnedNFTs_ProviderErrorLeavesStateIntact(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(nil, domain.ErrRateLimited)

	_, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	// The cursor was not advanced; a retry re-fetches the same page
	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{Items: []domain.NFT{nft(contractA, "1")}}, nil)

	result, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Admitted)
}

func TestService_FetchCollectors(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{Items: []domain.NFT{nft(contractA, "1")}}, nil)
	_, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)

	// Collector page holds the primary (already a node, case variant) and a
	// new address
	env.chainindex.EXPECT().
		GetCollectors(gomock.Any(), contractA, "1", "", 10).
		Return(&domain.CollectorPage{
			Owners: []string{"0x1111111111111111111111111111111111111111", addrCollector},
		}, nil)
	env.source.EXPECT().
		GetProfile(gomock.Any(), addrCollector).
		Return(&domain.Profile{Address: addrCollector, DisplayName: "bob"}, nil)

	result, err := env.svc.FetchCollectors(context.Background(), sess.ID, contractA, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Admitted)
	assert.Equal(t, 1, result.Duplicates)
	assert.False(t, result.HasMore)

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	// Nodes: primary, bob, one NFT. Links: primary->nft, bob->nft.
	assert.Len(t, proj.Nodes, 3)
	assert.Equal(t, 2, countLinks(proj, graph.LinkKindOwnership))

	// Pagination exhausted: replay is a no-op without a provider call
	result, err = env.svc.FetchCollectors(context.Background(), sess.ID, contractA, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Admitted)
	assert.False(t, result.HasMore)
}

func TestService_FetchCollectors_CollectorSetSpansTokens(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{Items: []domain.NFT{nft(contractA, "1"), nft(contractB, "2")}}, nil)
	_, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)

	// The collector is discovered via token 1 and enriched once
	env.chainindex.EXPECT().
		GetCollectors(gomock.Any(), contractA, "1", "", 10).
		Return(&domain.CollectorPage{Owners: []string{addrCollector}}, nil)
	env.source.EXPECT().
		GetProfile(gomock.Any(), addrCollector).
		Return(&domain.Profile{Address: addrCollector, DisplayName: "bob"}, nil)

	result, err := env.svc.FetchCollectors(context.Background(), sess.ID, contractA, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Admitted)

	// The same address collects token 2: filtered as duplicate, no second
	// enrichment, but the ownership fact still links it to token 2
	env.chainindex.EXPECT().
		GetCollectors(gomock.Any(), contractB, "2", "", 10).
		Return(&domain.CollectorPage{Owners: []string{addrCollector}}, nil)

	result, err = env.svc.FetchCollectors(context.Background(), sess.ID, contractB, "2")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Admitted)
	assert.Equal(t, 1, result.Duplicates)

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	// One bob node, linked to both tokens
	assert.Len(t, proj.Nodes, 4)
	bobLinks := 0
	for _, l := range proj.Links {
		if l.SourceID == "profile:1" && l.Kind == graph.LinkKindOwnership {
			bobLinks++
		}
	}
	assert.Equal(t, 2, bobLinks)
}

func TestService_FetchCollectors_UntrackedToken(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	_, err := env.svc.FetchCollectors(context.Background(), sess.ID, contractA, "99")
	assert.ErrorIs(t, err, domain.ErrTokenNotTracked)
}

func TestService_FetchCollectors_InvalidKey(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	_, err := env.svc.FetchCollectors(context.Background(), sess.ID, "garbage", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentityKey)

	_, err = env.svc.FetchCollectors(context.Background(), sess.ID, contractA, "not-decimal")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentityKey)
}

func TestService_ExpandContract(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	env.chainindex.EXPECT().
		GetContractNFTs(gomock.Any(), contractA, "", 12).
		Return(&domain.NFTPage{
			Items:      []domain.NFT{nft(contractA, "10"), nft(contractA, "11")},
			NextCursor: "pk-2",
		}, nil)

	result, err := env.svc.ExpandContract(context.Background(), sess.ID, contractA)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Admitted)
	assert.True(t, result.HasMore)

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	// Expanded tokens have no recorded owner: siblings of each other but
	// unlinked from any profile
	assert.Len(t, proj.Nodes, 3)
	assert.Equal(t, 0, countLinks(proj, graph.LinkKindOwnership))
	assert.Equal(t, 1, countLinks(proj, graph.LinkKindContractSibling))
}

func TestService_ExpandContract_InvalidAddress(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	_, err := env.svc.ExpandContract(context.Background(), sess.ID, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentityKey)
}

func TestService_ExpandContract_DeduplicatesAgainstOwnedTokens(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{Items: []domain.NFT{nft(contractA, "1")}}, nil)
	_, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)

	env.chainindex.EXPECT().
		GetContractNFTs(gomock.Any(), contractA, "", 12).
		Return(&domain.NFTPage{Items: []domain.NFT{nft(contractA, "1"), nft(contractA, "2")}}, nil)

	result, err := env.svc.ExpandContract(context.Background(), sess.ID, contractA)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Admitted)
	assert.Equal(t, 1, result.Duplicates)

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	// The owned token kept its ownership link through the expansion replay
	assert.Equal(t, 1, countLinks(proj, graph.LinkKindOwnership))
}

// withBlocklist configures the service with a blocklist containing contractB
func withBlocklist(t *testing.T) func(*testEnv) {
	t.Helper()
	return func(env *testEnv) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		fs := mocks.NewMockFileSystem(ctrl)
		fs.EXPECT().
			ReadFile("blocklist.json").
			Return([]byte(`{"contracts": ["`+contractB+`"]}`), nil)

		bl, err := registry.NewBlocklistLoader(fs, adapter.NewJSON()).Load("blocklist.json")
		require.NoError(t, err)
		env.blocklist = bl
	}
}

func TestService_FetchOwnedNFTs_SkipsBlockedContracts(t *testing.T) {
	env := setup(t, withBlocklist(t))
	sess := startSession(t, env)

	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{
			Items: []domain.NFT{nft(contractA, "1"), nft(contractB, "2")},
		}, nil)

	result, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Admitted)
	assert.Equal(t, 1, result.Skipped)

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	assert.Len(t, proj.Nodes, 2)
}

func TestService_ExpandContract_Blocked(t *testing.T) {
	env := setup(t, withBlocklist(t))
	sess := startSession(t, env)

	_, err := env.svc.ExpandContract(context.Background(), sess.ID, contractB)
	assert.ErrorIs(t, err, domain.ErrContractBlocked)
}

func TestService_Reset(t *testing.T) {
	env := setup(t)
	sess := startSession(t, env)

	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{Items: []domain.NFT{nft(contractA, "1")}}, nil)
	_, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)

	// Reset re-admits the cached primary without a provider call
	require.NoError(t, env.svc.Reset(sess.ID))

	proj, err := env.svc.Projection(sess.ID)
	require.NoError(t, err)
	require.Len(t, proj.Nodes, 1)
	assert.Equal(t, graph.NodeKindProfile, proj.Nodes[0].Kind)
	assert.Empty(t, proj.Links)

	// Pagination starts over after the reset
	env.marketplace.EXPECT().
		GetOwnedNFTs(gomock.Any(), addrPrimary, "", 12).
		Return(&domain.NFTPage{Items: []domain.NFT{nft(contractA, "1")}}, nil)

	result, err := env.svc.FetchOwnedNFTs(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Admitted)
}
