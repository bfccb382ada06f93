package chainindex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/walletgraph/walletgraph/internal/adapter"
	"github.com/walletgraph/walletgraph/internal/domain"
	"github.com/walletgraph/walletgraph/internal/ratelimit"
)

const PROVIDER_NAME = "chainindex"

// ownersResponse represents the paginated collector listing for a token
type ownersResponse struct {
	Owners        []string `json:"owners"`
	NextPageToken string   `json:"pageKey"`
}

// contractNFTRecord represents one NFT in the contract listing
type contractNFTRecord struct {
	Contract struct {
		Address string  `json:"address"`
		Name    *string `json:"name"`
	} `json:"contract"`
	TokenID     string  `json:"tokenId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       struct {
		OriginalURL *string `json:"originalUrl"`
	} `json:"image"`
	ExternalURL *string `json:"externalUrl"`
}

// contractNFTsResponse represents the paginated contract NFT listing
type contractNFTsResponse struct {
	NFTs          []contractNFTRecord `json:"nfts"`
	NextPageToken string              `json:"pageKey"`
}

// Client defines the interface for the blockchain ownership-indexing API
//
//go:generate mockgen -source=client.go -destination=../../mocks/chainindex_client.go -package=mocks -mock_names=Client=MockChainIndexClient
type Client interface {
	// GetCollectors fetches one page of owner addresses for a token
	GetCollectors(ctx context.Context, contractAddress string, tokenNumber string, cursor string, limit int) (*domain.CollectorPage, error)

	// GetContractNFTs fetches one page of NFTs minted under a contract.
	// Owners are unknown at this point; callers admit the tokens ownerless.
	GetContractNFTs(ctx context.Context, contractAddress string, cursor string, limit int) (*domain.NFTPage, error)
}

// chainIndexClient implements the ownership-indexing client
type chainIndexClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	apiKey         string
	json           adapter.JSON
}

// NewClient creates a new ownership-indexing client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, apiURL string, apiKey string, json adapter.JSON) Client {
	return &chainIndexClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         apiURL,
		apiKey:         apiKey,
		json:           json,
	}
}

// GetCollectors fetches one page of owner addresses for a token
func (c *chainIndexClient) GetCollectors(ctx context.Context, contractAddress string, tokenNumber string, cursor string, limit int) (*domain.CollectorPage, error) {
	query := url.Values{}
	query.Set("contractAddress", strings.ToLower(contractAddress))
	query.Set("tokenId", tokenNumber)
	query.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		query.Set("pageKey", cursor)
	}
	reqURL := fmt.Sprintf("%s/getOwnersForToken?%s", c.apiURL, query.Encode())

	respBody, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response ownersResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal owners response: %w", err)
	}

	return &domain.CollectorPage{
		Owners:     domain.NormalizeAddresses(response.Owners),
		NextCursor: response.NextPageToken,
		HasMore:    response.NextPageToken != "",
	}, nil
}

// GetContractNFTs fetches one page of NFTs minted under a contract
func (c *chainIndexClient) GetContractNFTs(ctx context.Context, contractAddress string, cursor string, limit int) (*domain.NFTPage, error) {
	query := url.Values{}
	query.Set("contractAddress", strings.ToLower(contractAddress))
	query.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		query.Set("pageKey", cursor)
	}
	reqURL := fmt.Sprintf("%s/getNFTsForContract?%s", c.apiURL, query.Encode())

	respBody, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response contractNFTsResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contract NFTs response: %w", err)
	}

	page := &domain.NFTPage{NextCursor: response.NextPageToken}
	for _, record := range response.NFTs {
		page.Items = append(page.Items, record.toNFT())
	}
	return page, nil
}

// get performs a rate-limited GET with the API key header and maps provider
// failures onto the domain error taxonomy.
func (c *chainIndexClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-API-KEY"] = c.apiKey
	}

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, reqURL, headers)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return respBody, nil
}

// mapError translates transport errors into the domain taxonomy
func mapError(err error) error {
	var statusErr *adapter.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: chainindex", domain.ErrRateLimited)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrProviderFailure, err.Error())
}

func (r *contractNFTRecord) toNFT() domain.NFT {
	nft := domain.NFT{
		ContractAddress: strings.ToLower(r.Contract.Address),
		TokenNumber:     r.TokenID,
	}
	if r.Name != nil {
		nft.Name = *r.Name
	}
	if r.Description != nil {
		nft.Description = *r.Description
	}
	if r.Image.OriginalURL != nil {
		nft.ImageURL = *r.Image.OriginalURL
	}
	if r.Contract.Name != nil {
		nft.CollectionName = *r.Contract.Name
	}
	if r.ExternalURL != nil {
		nft.ExternalURL = *r.ExternalURL
	}
	return nft
}
