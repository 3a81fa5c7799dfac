// Package types provides common type definitions for the burn exchange service.
package types

// Collection represents a whitelisted NFT collection contract address.
// Addresses are stored lowercased; compare against lowercased input.
type Collection string

const (
	// CollectionDragons is the Ridiculous Dragons collection.
	CollectionDragons Collection = "0x521b674f91d818f7786f784dcca2fc2b3121a6bb"
	// CollectionNomaimai is the Nomaimai collection.
	CollectionNomaimai Collection = "0x5099d14fbdc58039d68db2eb4fa3fa939da668b1"
)

// BurnAddress is the dead address NFTs are transferred to. No known private key.
const BurnAddress = "0x000000000000000000000000000000000000dead"

// WhitelistedCollections returns the collections eligible for burning.
func WhitelistedCollections() []Collection {
	return []Collection{CollectionDragons, CollectionNomaimai}
}

// IsWhitelisted reports whether a lowercased contract address is a known collection.
func IsWhitelisted(contractAddress string) bool {
	c := Collection(contractAddress)
	return c == CollectionDragons || c == CollectionNomaimai
}

// NFTDetails identifies a token and carries its display metadata.
type NFTDetails struct {
	ContractAddress string `json:"contractAddress"`
	TokenID         string `json:"tokenId"`
	Name            string `json:"name"`
	Media           string `json:"media"`
}

// WalletNFT is one entry of a wallet's inventory as reported by the indexer.
type WalletNFT struct {
	TokenID         string `json:"tokenId"`
	ContractAddress string `json:"contractAddress"`
	Name            string `json:"name"`
	Image           string `json:"image,omitempty"`
}

// TransferResult is the outcome of an on-chain burn transfer verification.
type TransferResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ServiceError represents a structured error response
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}
