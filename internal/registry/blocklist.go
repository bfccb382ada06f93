package registry

import (
	"fmt"
	"strings"

	"github.com/walletgraph/walletgraph/internal/adapter"
)

// Blocklist defines the interface for contract blocklist lookups
//
//go:generate mockgen -source=blocklist.go -destination=../mocks/blocklist.go -package=mocks -mock_names=Blocklist=MockBlocklist
type Blocklist interface {
	// IsBlocked checks if a contract address is blocked
	IsBlocked(contractAddress string) bool
}

// BlocklistData represents the structure of the blocklist.json file
type BlocklistData struct {
	Contracts []string `json:"contracts"`
}

// blocklist is the internal implementation of the Blocklist interface
type blocklist struct {
	// Fast lookup map of lowercased contract addresses
	contracts map[string]bool
}

// BlocklistLoader loads a contract blocklist from the file system
type BlocklistLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewBlocklistLoader creates a new blocklist loader
func NewBlocklistLoader(fs adapter.FileSystem, json adapter.JSON) *BlocklistLoader {
	return &BlocklistLoader{fs: fs, json: json}
}

// Load loads the blocklist from a JSON file
func (l *BlocklistLoader) Load(filePath string) (Blocklist, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocklist file: %w", err)
	}

	var blocklistData BlocklistData
	if err := l.json.Unmarshal(data, &blocklistData); err != nil {
		return nil, fmt.Errorf("failed to parse blocklist JSON: %w", err)
	}

	bl := &blocklist{contracts: make(map[string]bool)}
	for _, addr := range blocklistData.Contracts {
		bl.contracts[strings.ToLower(addr)] = true
	}
	return bl, nil
}

// IsBlocked checks if a contract address is blocked. A nil blocklist blocks
// nothing, so callers need no configuration check.
func (b *blocklist) IsBlocked(contractAddress string) bool {
	if b == nil {
		return false
	}
	return b.contracts[strings.ToLower(contractAddress)]
}
