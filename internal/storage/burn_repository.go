package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/burn-exchange/internal/models"
	"github.com/google/uuid"
)

// BurnRepository handles burn record persistence. Records are append-only:
// there is no update or delete path.
type BurnRepository struct {
	db *PostgresDB
}

// NewBurnRepository creates a new burn record repository
func NewBurnRepository(db *PostgresDB) *BurnRepository {
	return &BurnRepository{db: db}
}

// Insert creates a new burn record. The ID and BurnedAt fields are assigned
// here if unset.
func (r *BurnRepository) Insert(ctx context.Context, record *models.BurnRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.BurnedAt.IsZero() {
		record.BurnedAt = time.Now().UTC()
	}

	record.WalletAddress = strings.ToLower(record.WalletAddress)
	record.NFTDetails.ContractAddress = strings.ToLower(record.NFTDetails.ContractAddress)

	query := `
		INSERT INTO burn_records (id, wallet_address, contract_address, token_id, name, media, points_received, burned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		record.ID,
		record.WalletAddress,
		record.NFTDetails.ContractAddress,
		record.NFTDetails.TokenID,
		record.NFTDetails.Name,
		record.NFTDetails.Media,
		record.PointsReceived,
		record.BurnedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert burn record: %w", err)
	}

	return nil
}

// List retrieves burn records ordered newest-first. An empty walletAddress
// returns records across all wallets; callers must be aware the result is
// unpaginated.
func (r *BurnRepository) List(ctx context.Context, walletAddress string) ([]*models.BurnRecord, error) {
	query := `
		SELECT id, wallet_address, contract_address, token_id, name, media, points_received, burned_at
		FROM burn_records
	`
	args := []interface{}{}

	if walletAddress != "" {
		query += ` WHERE wallet_address = $1`
		args = append(args, strings.ToLower(walletAddress))
	}
	query += ` ORDER BY burned_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list burn records: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty history serializes as [] rather than null.
	records := []*models.BurnRecord{}
	for rows.Next() {
		var record models.BurnRecord
		err := rows.Scan(
			&record.ID,
			&record.WalletAddress,
			&record.NFTDetails.ContractAddress,
			&record.NFTDetails.TokenID,
			&record.NFTDetails.Name,
			&record.NFTDetails.Media,
			&record.PointsReceived,
			&record.BurnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan burn record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating burn records: %w", err)
	}

	return records, nil
}

// CountByWallet returns the number of burns recorded for a wallet
func (r *BurnRepository) CountByWallet(ctx context.Context, walletAddress string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM burn_records WHERE wallet_address = $1`

	err := r.db.Pool().QueryRow(ctx, query, strings.ToLower(walletAddress)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count burn records: %w", err)
	}

	return count, nil
}
