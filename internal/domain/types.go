package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TokenKey is the canonical identity key for an NFT in format: contract:tokenNumber
// (e.g. "0xbc4c...f13d:1234"). The contract address is lowercased; the token
// number is an opaque decimal string and is never parsed as a number.
type TokenKey string

var tokenNumberRe = regexp.MustCompile(`^[0-9]+$`)

// NewTokenKey builds the identity key for a token.
// Returns ErrInvalidIdentityKey when the contract address is not a hex address
// or the token number is empty or non-decimal.
func NewTokenKey(contractAddress string, tokenNumber string) (TokenKey, error) {
	if !common.IsHexAddress(contractAddress) {
		return "", fmt.Errorf("%w: bad contract address %q", ErrInvalidIdentityKey, contractAddress)
	}
	if !tokenNumberRe.MatchString(tokenNumber) {
		return "", fmt.Errorf("%w: bad token number %q", ErrInvalidIdentityKey, tokenNumber)
	}
	return TokenKey(fmt.Sprintf("%s:%s", strings.ToLower(contractAddress), tokenNumber)), nil
}

// String returns the string representation of the TokenKey
func (k TokenKey) String() string {
	return string(k)
}

// Parse splits the TokenKey into contract address and token number
func (k TokenKey) Parse() (string, string) {
	parts := strings.SplitN(string(k), ":", 2)
	return parts[0], parts[1]
}

// ProfileKey builds the identity key for a wallet address. Addresses differing
// only in case resolve to the same key.
func ProfileKey(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: bad address %q", ErrInvalidIdentityKey, address)
	}
	return NormalizeAddress(address), nil
}

// NormalizeAddress returns the canonical lowercase form of an address.
// The lowercase form is the sole deduplication criterion for profiles.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// NormalizeAddresses normalizes a list of addresses in place
func NormalizeAddresses(addresses []string) []string {
	for i, address := range addresses {
		addresses[i] = NormalizeAddress(address)
	}
	return addresses
}

// Profile represents a wallet/profile entity. The address is the immutable
// identity; display fields are mutable since enrichment may arrive after the
// profile was first referenced.
type Profile struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Website     string `json:"website,omitempty"`
	JoinedDate  string `json:"joined_date,omitempty"`
	Primary     bool   `json:"primary"`
}

// NFT represents a distinct token. ContractAddress and TokenNumber together
// form the identity key; everything else is display metadata.
type NFT struct {
	ContractAddress string `json:"contract_address"`
	TokenNumber     string `json:"token_number"`
	Name            string `json:"name,omitempty"`
	Description     string `json:"description,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	CollectionName  string `json:"collection_name,omitempty"`
	ExternalURL     string `json:"external_url,omitempty"`
}

// Key returns the token's identity key
func (n *NFT) Key() (TokenKey, error) {
	return NewTokenKey(n.ContractAddress, n.TokenNumber)
}

// NFTPage is one page of NFTs from a paginated provider call
type NFTPage struct {
	Items      []NFT
	NextCursor string
}

// HasMore reports whether another page can be fetched
func (p *NFTPage) HasMore() bool {
	return p.NextCursor != ""
}

// CollectorPage is one page of collector addresses for a token
type CollectorPage struct {
	Owners     []string
	NextCursor string
	HasMore    bool
}
