package models

import (
	"time"

	"github.com/burn-exchange/internal/types"
)

// BurnRecord is one immutable entry per burn event. Created exactly once per
// successful submission, never updated or deleted. No uniqueness is enforced
// on (contract, token); burning is physically one-time per token.
type BurnRecord struct {
	ID             string           `json:"id"`
	WalletAddress  string           `json:"walletAddress"`
	NFTDetails     types.NFTDetails `json:"nftDetails"`
	PointsReceived int              `json:"pointsReceived"`
	BurnedAt       time.Time        `json:"burnedAt"`
}
