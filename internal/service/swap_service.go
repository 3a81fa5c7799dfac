// Package service implements the burn and swap workflows.
package service

import (
	"context"
	"strings"

	apperrors "github.com/burn-exchange/internal/errors"
	"github.com/burn-exchange/internal/logging"
	"github.com/burn-exchange/internal/models"
	"github.com/burn-exchange/internal/storage"
	"github.com/burn-exchange/internal/types"
)

// BurnStore persists immutable burn records
type BurnStore interface {
	Insert(ctx context.Context, record *models.BurnRecord) error
	List(ctx context.Context, walletAddress string) ([]*models.BurnRecord, error)
}

// AccountStore persists the per-wallet points ledger
type AccountStore interface {
	ApplyAccrual(ctx context.Context, input *storage.AccrualInput) (*models.UserAccount, error)
	Points(ctx context.Context, walletAddress string) (int64, error)
}

// EventSink receives best-effort analytics events
type EventSink interface {
	Append(ctx context.Context, event *models.BurnEvent) error
}

// BurnNotifier sends best-effort burn confirmations
type BurnNotifier interface {
	SendBurnConfirmation(ctx context.Context, walletAddress, email string, nft types.NFTDetails, pointsReceived int) error
}

// BalanceCache caches per-wallet point summaries
type BalanceCache interface {
	Get(ctx context.Context, walletAddress string) (*models.PointsSummary, error)
	Set(ctx context.Context, summary *models.PointsSummary) error
	Invalidate(ctx context.Context, walletAddress string) error
}

// SwapService orchestrates burn recording and point accrual. The burn record
// write always happens first; accrual is never attempted after a failed write,
// and notification failures never fail the operation.
type SwapService struct {
	burns    BurnStore
	accounts AccountStore
	events   EventSink
	notifier BurnNotifier
	cache    BalanceCache
}

// NewSwapService creates a new swap service. The events, notifier, and cache
// collaborators are optional; nil disables them.
func NewSwapService(burns BurnStore, accounts AccountStore, events EventSink, notifier BurnNotifier, cache BalanceCache) *SwapService {
	return &SwapService{
		burns:    burns,
		accounts: accounts,
		events:   events,
		notifier: notifier,
		cache:    cache,
	}
}

// SwapInput is a burn submission with optional contact details
type SwapInput struct {
	WalletAddress  string           `json:"walletAddress"`
	NFTDetails     types.NFTDetails `json:"nftDetails"`
	PointsReceived int              `json:"pointsReceived"`
	Email          string           `json:"email,omitempty"`
	TermsAgreed    bool             `json:"termsAgreed,omitempty"`
}

// SwapResult is the outcome of a completed swap
type SwapResult struct {
	BurnRecord *models.BurnRecord    `json:"burnRecord"`
	User       *models.PointsSummary `json:"user"`
}

// validate enforces the required-field contract. A pointsReceived of zero is
// rejected, matching the established product behavior of treating zero-value
// rewards as invalid submissions.
func validate(input *SwapInput) error {
	if strings.TrimSpace(input.WalletAddress) == "" {
		return apperrors.NewMissingFieldsError()
	}
	if input.NFTDetails.ContractAddress == "" || input.NFTDetails.TokenID == "" {
		return apperrors.NewMissingFieldsError()
	}
	if input.PointsReceived <= 0 {
		return apperrors.NewMissingFieldsError()
	}
	return nil
}

// Swap records a burn and accrues points to the wallet's account.
//
// Step order is a hard guarantee: the burn record is written first, and a
// failed write stops the operation before any point accrual. The confirmation
// email is gated on this call's input (email supplied and terms agreed), not
// on the account's persisted state, and its failure is swallowed.
func (s *SwapService) Swap(ctx context.Context, input *SwapInput) (*SwapResult, error) {
	logger := logging.FromContext(ctx)

	if err := validate(input); err != nil {
		return nil, err
	}

	input.WalletAddress = strings.ToLower(input.WalletAddress)
	input.NFTDetails.ContractAddress = strings.ToLower(input.NFTDetails.ContractAddress)

	record := &models.BurnRecord{
		WalletAddress:  input.WalletAddress,
		NFTDetails:     input.NFTDetails,
		PointsReceived: input.PointsReceived,
	}

	if err := s.burns.Insert(ctx, record); err != nil {
		logger.WithError(err).WithField("wallet", input.WalletAddress).Error("Failed to create burn record")
		return nil, apperrors.NewPersistenceError("create burn record", err)
	}

	account, err := s.accounts.ApplyAccrual(ctx, &storage.AccrualInput{
		WalletAddress: input.WalletAddress,
		Points:        input.PointsReceived,
		Email:         input.Email,
		TermsAgreed:   input.TermsAgreed,
	})
	if err != nil {
		logger.WithError(err).WithField("wallet", input.WalletAddress).Error("Failed to accrue points")
		return nil, apperrors.NewPersistenceError("accrue points", err)
	}

	if s.notifier != nil && input.Email != "" && input.TermsAgreed {
		if err := s.notifier.SendBurnConfirmation(ctx, input.WalletAddress, input.Email, input.NFTDetails, input.PointsReceived); err != nil {
			// Best-effort: the swap already succeeded.
			logger.WithError(err).WithFields(map[string]interface{}{
				"wallet": input.WalletAddress,
				"email":  input.Email,
			}).Warn("Failed to send burn confirmation")
		}
	}

	s.appendEvent(ctx, record)
	s.invalidateBalance(ctx, input.WalletAddress)

	return &SwapResult{
		BurnRecord: record,
		User: &models.PointsSummary{
			WalletAddress: account.WalletAddress,
			Points:        account.Points,
		},
	}, nil
}

// RecordBurn writes a burn record without touching the points ledger. Used by
// callers that track points separately and only want the history entry.
func (s *SwapService) RecordBurn(ctx context.Context, input *SwapInput) (*models.BurnRecord, error) {
	logger := logging.FromContext(ctx)

	if err := validate(input); err != nil {
		return nil, err
	}

	input.WalletAddress = strings.ToLower(input.WalletAddress)
	input.NFTDetails.ContractAddress = strings.ToLower(input.NFTDetails.ContractAddress)

	record := &models.BurnRecord{
		WalletAddress:  input.WalletAddress,
		NFTDetails:     input.NFTDetails,
		PointsReceived: input.PointsReceived,
	}

	if err := s.burns.Insert(ctx, record); err != nil {
		logger.WithError(err).WithField("wallet", input.WalletAddress).Error("Failed to create burn record")
		return nil, apperrors.NewPersistenceError("create burn record", err)
	}

	s.appendEvent(ctx, record)

	return record, nil
}

// ListBurns returns burn records newest-first. An empty wallet address returns
// records across all wallets.
func (s *SwapService) ListBurns(ctx context.Context, walletAddress string) ([]*models.BurnRecord, error) {
	records, err := s.burns.List(ctx, walletAddress)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("Failed to list burn records")
		return nil, apperrors.NewPersistenceError("list burn records", err)
	}
	return records, nil
}

// Points returns the wallet's current balance, reading through the cache when
// one is configured. Wallets with no account have a balance of zero.
func (s *SwapService) Points(ctx context.Context, walletAddress string) (*models.PointsSummary, error) {
	logger := logging.FromContext(ctx)
	walletAddress = strings.ToLower(walletAddress)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, walletAddress)
		if err != nil {
			logger.WithError(err).Warn("Points cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	points, err := s.accounts.Points(ctx, walletAddress)
	if err != nil {
		logger.WithError(err).WithField("wallet", walletAddress).Error("Failed to read points balance")
		return nil, apperrors.NewPersistenceError("read points balance", err)
	}

	summary := &models.PointsSummary{WalletAddress: walletAddress, Points: points}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			logger.WithError(err).Warn("Points cache write failed")
		}
	}

	return summary, nil
}

func (s *SwapService) appendEvent(ctx context.Context, record *models.BurnRecord) {
	if s.events == nil {
		return
	}

	event := &models.BurnEvent{
		WalletAddress:   record.WalletAddress,
		ContractAddress: record.NFTDetails.ContractAddress,
		TokenID:         record.NFTDetails.TokenID,
		TokenName:       record.NFTDetails.Name,
		PointsReceived:  record.PointsReceived,
		BurnedAt:        record.BurnedAt,
	}

	if err := s.events.Append(ctx, event); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("Failed to append burn analytics event")
	}
}

func (s *SwapService) invalidateBalance(ctx context.Context, walletAddress string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, walletAddress); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("Failed to invalidate points cache")
	}
}
