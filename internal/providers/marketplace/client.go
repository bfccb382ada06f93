package marketplace

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

const PROVIDER_NAME = "marketplace"

// profileResponse represents the profile payload from the marketplace API
type profileResponse struct {
	Address       string  `json:"address"`
	Username      *string `json:"username"`
	ProfileImgURL *string `json:"profile_image_url"`
	Bio           *string `json:"bio"`
	Website       *string `json:"website"`
	JoinedDate    *string `json:"joined_date"`
}

// assetRecord represents one NFT in the marketplace asset listing
type assetRecord struct {
	Contract    string  `json:"contract"`
	Identifier  string  `json:"identifier"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Collection  *string `json:"collection"`
	OpenseaURL  *string `json:"opensea_url"`
}

// ownedAssetsResponse represents the paginated owned-NFTs payload
type ownedAssetsResponse struct {
	NFTs []assetRecord `json:"nfts"`
	Next string        `json:"next"`
}

// Client defines the interface for marketplace profile/asset API operations
//
//go:generate mockgen -source=client.go -destination=../../mocks/marketplace_client.go -package=mocks -mock_names=Client=MockMarketplaceClient
type Client interface {
	// GetProfile fetches the display profile of a wallet address
	GetProfile(ctx context.Context, address string) (*domain.Profile, error)

	// GetOwnedNFTs fetches one page of NFTs owned by a wallet address.
	// The cursor is the opaque continuation token from the previous page,
	// empty for the first page.
	GetOwnedNFTs(ctx context.Context, address string, cursor string, limit int) (*domain.NFTPage, error)
}

// marketplaceClient implements the marketplace client
type marketplaceClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	apiKey         string
	json           adapter.JSON
}

// NewClient creates a new marketplace client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, apiURL string, apiKey string, json adapter.JSON) Client {
	return &marketplaceClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         apiURL,
		apiKey:         apiKey,
		json:           json,
	}
}

// GetProfile fetches the display profile of a wallet address
func (c *marketplaceClient) GetProfile(ctx context.Context, address string) (*domain.Profile, error) {
	reqURL := fmt.Sprintf("%s/accounts/%s", c.apiURL, domain.NormalizeAddress(address))

	respBody, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response profileResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile response: %w", err)
	}

	profile := &domain.Profile{Address: domain.NormalizeAddress(address)}
	if response.Username != nil {
		profile.DisplayName = *response.Username
	}
	if response.ProfileImgURL != nil {
		profile.AvatarURL = *response.ProfileImgURL
	}
	if response.Bio != nil {
		profile.Bio = *response.Bio
	}
	if response.Website != nil {
		profile.Website = *response.Website
	}
	if response.JoinedDate != nil {
		profile.JoinedDate = *response.JoinedDate
	}
	return profile, nil
}

// GetOwnedNFTs fetches one page of NFTs owned by a wallet address
func (c *marketplaceClient) GetOwnedNFTs(ctx context.Context, address string, cursor string, limit int) (*domain.NFTPage, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		query.Set("next", cursor)
	}
	reqURL := fmt.Sprintf("%s/chain/ethereum/account/%s/nfts?%s",
		c.apiURL,
		domain.NormalizeAddress(address),
		query.Encode(),
	)

	respBody, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response ownedAssetsResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal owned NFTs response: %w", err)
	}

	page := &domain.NFTPage{NextCursor: response.Next}
	for _, record := range response.NFTs {
		page.Items = append(page.Items, record.toNFT())
	}
	return page, nil
}

// get performs a rate-limited GET with the API key header and maps provider
// failures onto the domain error taxonomy.
func (c *marketplaceClient) get(ctx context.Context, reqURL string) ([]byte, error) {
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
		switch statusErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, statusErr.Body)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: marketplace", domain.ErrRateLimited)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrProviderFailure, err.Error())
}

func (r *assetRecord) toNFT() domain.NFT {
	nft := domain.NFT{
		ContractAddress: strings.ToLower(r.Contract),
		TokenNumber:     r.Identifier,
	}
	if r.Name != nil {
		nft.Name = *r.Name
	}
	if r.Description != nil {
		nft.Description = *r.Description
	}
	if r.ImageURL != nil {
		nft.ImageURL = *r.ImageURL
	}
	if r.Collection != nil {
		nft.CollectionName = *r.Collection
	}
	if r.OpenseaURL != nil {
		nft.ExternalURL = *r.OpenseaURL
	}
	return nft
}
