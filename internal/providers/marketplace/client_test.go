package marketplace_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletgraph/walletgraph/internal/adapter"
	"github.com/walletgraph/walletgraph/internal/domain"
	"github.com/walletgraph/walletgraph/internal/logger"
	"github.com/walletgraph/walletgraph/internal/mocks"
	"github.com/walletgraph/walletgraph/internal/providers/marketplace"
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
	testAPIURL = "https://marketplace.test/v2"
	testAPIKey = "test-key"
	testAddr   = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"
)

func newTestClient(t *testing.T) (marketplace.Client, *mocks.MockHTTPClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := marketplace.NewClient(httpClient, nil, testAPIURL, testAPIKey, adapter.NewJSON())
	return client, httpClient
}

func TestClient_GetProfile(t *testing.T) {
	client, httpClient := newTestClient(t)

	httpClient.EXPECT().
		GetBytes(gomock.Any(), testAPIURL+"/accounts/"+testAddr, map[string]string{"X-API-KEY": testAPIKey}).
		Return([]byte(`{
			"address": "0xab5801a7d398351b8be11c439e05c5b3259aec9b",
			"username": "alice",
			"profile_image_url": "https://img.test/alice.png",
			"bio": "collector",
			"website": "https://alice.test",
			"joined_date": "2021-03-01"
		}`), nil)

	profile, err := client.GetProfile(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, testAddr, profile.Address)
	assert.Equal(t, "alice", profile.DisplayName)
	assert.Equal(t, "https://img.test/alice.png", profile.AvatarURL)
	assert.Equal(t, "collector", profile.Bio)
	assert.Equal(t, "https://alice.test", profile.Website)
	assert.Equal(t, "2021-03-01", profile.JoinedDate)
}

func TestClient_GetProfile_LowercasesAddressInURL(t *testing.T) {
	client, httpClient := newTestClient(t)

	httpClient.EXPECT().
		GetBytes(gomock.Any(), testAPIURL+"/accounts/"+testAddr, gomock.Any()).
		Return([]byte(`{"address": "`+testAddr+`"}`), nil)

	_, err := client.GetProfile(context.Background(), "0xAb5801a7D398351b8bE11C439e05C5b3259aec9B")
	require.NoError(t, err)
}

func TestClient_GetProfile_NullFields(t *testing.T) {
	client, httpClient := newTestClient(t)

	httpClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"address": "`+testAddr+`", "username": null, "bio": null}`), nil)

	profile, err := client.GetProfile(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Empty(t, profile.DisplayName)
	assert.Empty(t, profile.Bio)
}

func TestClient_GetProfile_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedErr error
	}{
		{
			name:        "404 maps to profile not found",
			err:         &adapter.StatusError{StatusCode: http.StatusNotFound, Body: "no such account"},
			expectedErr: domain.ErrProfileNotFound,
		},
		{
			name:        "429 maps to rate limited",
			err:         &adapter.StatusError{StatusCode: http.StatusTooManyRequests, Body: "slow down"},
			expectedErr: domain.ErrRateLimited,
		},
		{
			name:        "500 maps to provider failure",
			err:         &adapter.StatusError{StatusCode: http.StatusInternalServerError, Body: "boom"},
			expectedErr: domain.ErrProviderFailure,
		},
		{
			name:        "network error maps to provider failure",
			err:         errors.New("connection refused"),
			expectedErr: domain.ErrProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, httpClient := newTestClient(t)
			httpClient.EXPECT().
				GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			_, err := client.GetProfile(context.Background(), testAddr)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestClient_GetOwnedNFTs_FirstPage(t *testing.T) {
	client, httpClient := newTestClient(t)

	expectedURL := testAPIURL + "/chain/ethereum/account/" + testAddr + "/nfts?limit=12"
	httpClient.EXPECT().
		GetBytes(gomock.Any(), expectedURL, map[string]string{"X-API-KEY": testAPIKey}).
		Return([]byte(`{
			"nfts": [
				{
					"contract": "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D",
					"identifier": "1234",
					"name": "Ape #1234",
					"image_url": "https://img.test/1234.png",
					"collection": "boredapeyachtclub",
					"opensea_url": "https://opensea.io/assets/1234"
				},
				{
					"contract": "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
					"identifier": "5678"
				}
			],
			"next": "page-2"
		}`), nil)

	page, err := client.GetOwnedNFTs(context.Background(), testAddr, "", 12)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "page-2", page.NextCursor)
	assert.True(t, page.HasMore())

	// Contract addresses are lowercased at the wire boundary
	assert.Equal(t, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", page.Items[0].ContractAddress)
	assert.Equal(t, "1234", page.Items[0].TokenNumber)
	assert.Equal(t, "Ape #1234", page.Items[0].Name)
	assert.Equal(t, "https://img.test/1234.png", page.Items[0].ImageURL)
	assert.Equal(t, "boredapeyachtclub", page.Items[0].CollectionName)
	assert.Equal(t, "https://opensea.io/assets/1234", page.Items[0].ExternalURL)
	assert.Empty(t, page.Items[1].Name)
}

func TestClient_GetOwnedNFTs_WithCursor(t *testing.T) {
	client, httpClient := newTestClient(t)

	expectedURL := testAPIURL + "/chain/ethereum/account/" + testAddr + "/nfts?limit=12&next=page-2"
	httpClient.EXPECT().
		GetBytes(gomock.Any(), expectedURL, gomock.Any()).
		Return([]byte(`{"nfts": [], "next": ""}`), nil)

	page, err := client.GetOwnedNFTs(context.Background(), testAddr, "page-2", 12)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore())
}

func TestClient_GetOwnedNFTs_RateLimited(t *testing.T) {
	client, httpClient := newTestClient(t)

	httpClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &adapter.StatusError{StatusCode: http.StatusTooManyRequests, Body: "slow down"})

	_, err := client.GetOwnedNFTs(context.Background(), testAddr, "", 12)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestClient_NoAPIKeyOmitsHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := marketplace.NewClient(httpClient, nil, testAPIURL, "", adapter.NewJSON())

	httpClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), map[string]string{}).
		Return([]byte(`{"address": "`+testAddr+`"}`), nil)

	_, err := client.GetProfile(context.Background(), testAddr)
	require.NoError(t, err)
}
