package models

import "time"

// UserAccount is the mutable per-wallet points ledger entry.
//
// Points only accrue; there is no spend path. Email is write-once and
// TermsAgreed is a one-way transition, both enforced by the repository's
// upsert statement rather than application code.
type UserAccount struct {
	WalletAddress string     `json:"walletAddress"`
	Points        int64      `json:"points"`
	Email         *string    `json:"email,omitempty"`
	TermsAgreed   bool       `json:"termsAgreed"`
	TermsAgreedAt *time.Time `json:"termsAgreedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// PointsSummary is the slice of an account returned to API callers.
type PointsSummary struct {
	WalletAddress string `json:"walletAddress"`
	Points        int64  `json:"points"`
}
