package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/burn-exchange/internal/models"
)

// EventRepository stores denormalized burn events in ClickHouse for analytics
// queries. Rows are immutable; there is no update or delete path.
type EventRepository struct {
	db *ClickHouseDB
}

// NewEventRepository creates a new burn event repository
func NewEventRepository(db *ClickHouseDB) *EventRepository {
	return &EventRepository{db: db}
}

// Append inserts one burn event
func (r *EventRepository) Append(ctx context.Context, event *models.BurnEvent) error {
	query := `
		INSERT INTO burn_events (wallet_address, contract_address, token_id, token_name, points_received, burned_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	err := r.db.Conn().Exec(ctx, query,
		strings.ToLower(event.WalletAddress),
		strings.ToLower(event.ContractAddress),
		event.TokenID,
		event.TokenName,
		int32(event.PointsReceived), // #nosec G115 - tiers are small positive integers
		event.BurnedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to append burn event: %w", err)
	}

	return nil
}

// Stats aggregates burn history across all wallets: totals, per-collection
// breakdown, and the ten highest-earning wallets.
func (r *EventRepository) Stats(ctx context.Context) (*models.BurnStats, error) {
	stats := &models.BurnStats{}

	totalsQuery := `
		SELECT count(), sum(points_received), uniqExact(wallet_address)
		FROM burn_events
	`
	var totalPoints uint64
	if err := r.db.Conn().QueryRow(ctx, totalsQuery).Scan(&stats.TotalBurns, &totalPoints, &stats.UniqueWallets); err != nil {
		return nil, fmt.Errorf("failed to query burn totals: %w", err)
	}
	stats.TotalPoints = totalPoints

	collectionQuery := `
		SELECT contract_address, count(), sum(points_received)
		FROM burn_events
		GROUP BY contract_address
		ORDER BY count() DESC
	`
	rows, err := r.db.Conn().Query(ctx, collectionQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs models.CollectionStats
		if err := rows.Scan(&cs.ContractAddress, &cs.Burns, &cs.Points); err != nil {
			return nil, fmt.Errorf("failed to scan collection stats: %w", err)
		}
		stats.ByCollection = append(stats.ByCollection, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection stats: %w", err)
	}

	walletQuery := `
		SELECT wallet_address, count(), sum(points_received)
		FROM burn_events
		GROUP BY wallet_address
		ORDER BY sum(points_received) DESC
		LIMIT 10
	`
	walletRows, err := r.db.Conn().Query(ctx, walletQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet stats: %w", err)
	}
	defer walletRows.Close()

	for walletRows.Next() {
		var ws models.WalletStats
		if err := walletRows.Scan(&ws.WalletAddress, &ws.Burns, &ws.Points); err != nil {
			return nil, fmt.Errorf("failed to scan wallet stats: %w", err)
		}
		stats.TopWallets = append(stats.TopWallets, ws)
	}
	if err := walletRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet stats: %w", err)
	}

	return stats, nil
}
