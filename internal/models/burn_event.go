package models

import "time"

// BurnEvent is the denormalized analytics row written to ClickHouse for every
// burn. It mirrors BurnRecord but is flattened for aggregation queries; writes
// are best-effort and never affect workflow outcome.
type BurnEvent struct {
	WalletAddress   string    `json:"walletAddress"`
	ContractAddress string    `json:"contractAddress"`
	TokenID         string    `json:"tokenId"`
	TokenName       string    `json:"tokenName"`
	PointsReceived  int       `json:"pointsReceived"`
	BurnedAt        time.Time `json:"burnedAt"`
}

// BurnStats aggregates burn history across all wallets.
type BurnStats struct {
	TotalBurns    uint64            `json:"totalBurns"`
	TotalPoints   uint64            `json:"totalPoints"`
	UniqueWallets uint64            `json:"uniqueWallets"`
	ByCollection  []CollectionStats `json:"byCollection"`
	TopWallets    []WalletStats     `json:"topWallets"`
}

// CollectionStats aggregates burns for a single collection.
type CollectionStats struct {
	ContractAddress string `json:"contractAddress"`
	Burns           uint64 `json:"burns"`
	Points          uint64 `json:"points"`
}

// WalletStats aggregates burns for a single wallet.
type WalletStats struct {
	WalletAddress string `json:"walletAddress"`
	Burns         uint64 `json:"burns"`
	Points        uint64 `json:"points"`
}
