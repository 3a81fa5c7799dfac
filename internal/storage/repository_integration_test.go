package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/burn-exchange/internal/config"
	"github.com/burn-exchange/internal/models"
	"github.com/burn-exchange/internal/types"
)

// connectTestPostgres connects to the local dev database, skipping the test
// when Postgres is not available. Requires migrations to have been applied.
func connectTestPostgres(t *testing.T) *PostgresDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := &config.PostgresConfig{
		Host:           "localhost",
		Port:           "5432",
		Database:       "burn_exchange",
		User:           "burn",
		Password:       "",
		MaxConnections: 10,
	}

	db, err := NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping test - Postgres not available: %v", err)
	}
	t.Cleanup(db.Close)

	return db
}

// testWallet returns a wallet address unique to this run so repeated test
// invocations never collide on persisted rows.
func testWallet(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("0xtest%d", time.Now().UnixNano())
}

func cleanupWallet(t *testing.T, db *PostgresDB, wallet string) {
	t.Helper()
	t.Cleanup(func() {
		ctx := testContext(t)
		db.Pool().Exec(ctx, `DELETE FROM burn_records WHERE wallet_address = $1`, wallet)
		db.Pool().Exec(ctx, `DELETE FROM user_accounts WHERE wallet_address = $1`, wallet)
	})
}

func TestAccountRepository_ApplyAccrualIntegration(t *testing.T) {
	db := connectTestPostgres(t)
	repo := NewAccountRepository(db)
	ctx := testContext(t)

	wallet := testWallet(t)
	cleanupWallet(t, db, wallet)

	// First accrual creates the account with email and terms.
	first, err := repo.ApplyAccrual(ctx, &AccrualInput{
		WalletAddress: wallet,
		Points:        5,
		Email:         "first@example.com",
		TermsAgreed:   true,
	})
	if err != nil {
		t.Fatalf("first ApplyAccrual() error = %v", err)
	}
	if first.Points != 5 {
		t.Errorf("Expected points 5 after creation, got %d", first.Points)
	}
	if first.Email == nil || *first.Email != "first@example.com" {
		t.Errorf("Expected email first@example.com, got %v", first.Email)
	}
	if !first.TermsAgreed || first.TermsAgreedAt == nil {
		t.Errorf("Expected terms agreed with timestamp, got %v / %v", first.TermsAgreed, first.TermsAgreedAt)
	}

	// Second accrual with a different email and termsAgreed=false: points add
	// up, email stays first-write, terms never revert.
	second, err := repo.ApplyAccrual(ctx, &AccrualInput{
		WalletAddress: wallet,
		Points:        3,
		Email:         "second@example.com",
		TermsAgreed:   false,
	})
	if err != nil {
		t.Fatalf("second ApplyAccrual() error = %v", err)
	}
	if second.Points != 8 {
		t.Errorf("Expected points 8 after second accrual, got %d", second.Points)
	}
	if second.Email == nil || *second.Email != "first@example.com" {
		t.Errorf("Expected email to remain first@example.com, got %v", second.Email)
	}
	if !second.TermsAgreed {
		t.Error("Expected termsAgreed to remain true")
	}
	if second.TermsAgreedAt == nil || !second.TermsAgreedAt.Equal(*first.TermsAgreedAt) {
		t.Errorf("Expected terms_agreed_at to keep its original stamp, got %v", second.TermsAgreedAt)
	}

	// The persisted row matches what the upsert returned.
	persisted, err := repo.Get(ctx, wallet)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if persisted == nil {
		t.Fatal("Expected persisted account, got nil")
	}
	if persisted.Points != 8 {
		t.Errorf("Expected persisted points 8, got %d", persisted.Points)
	}
	if persisted.Email == nil || *persisted.Email != "first@example.com" {
		t.Errorf("Expected persisted email first@example.com, got %v", persisted.Email)
	}
}

func TestAccountRepository_PointsAbsentWalletIntegration(t *testing.T) {
	db := connectTestPostgres(t)
	repo := NewAccountRepository(db)
	ctx := testContext(t)

	points, err := repo.Points(ctx, testWallet(t))
	if err != nil {
		t.Fatalf("Points() error = %v", err)
	}
	if points != 0 {
		t.Errorf("Expected 0 points for absent wallet, got %d", points)
	}
}

func TestBurnRepository_ListOrderingIntegration(t *testing.T) {
	db := connectTestPostgres(t)
	repo := NewBurnRepository(db)
	ctx := testContext(t)

	wallet := testWallet(t)
	cleanupWallet(t, db, wallet)

	base := time.Now().UTC().Truncate(time.Microsecond)

	older := &models.BurnRecord{
		WalletAddress: wallet,
		NFTDetails: types.NFTDetails{
			ContractAddress: "0x521b674f91d818f7786f784dcca2fc2b3121a6bb",
			TokenID:         "3",
			Name:            "Dragon #3",
		},
		PointsReceived: 1,
		BurnedAt:       base.Add(-time.Hour),
	}
	newer := &models.BurnRecord{
		WalletAddress: wallet,
		NFTDetails: types.NFTDetails{
			ContractAddress: "0x521b674f91d818f7786f784dcca2fc2b3121a6bb",
			TokenID:         "9800",
			Name:            "Dragon #9800",
		},
		PointsReceived: 5,
		BurnedAt:       base,
	}

	// Insert oldest last so ordering cannot come from insertion order.
	if err := repo.Insert(ctx, newer); err != nil {
		t.Fatalf("Insert(newer) error = %v", err)
	}
	if err := repo.Insert(ctx, older); err != nil {
		t.Fatalf("Insert(older) error = %v", err)
	}

	records, err := repo.List(ctx, wallet)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].NFTDetails.TokenID != "9800" || records[1].NFTDetails.TokenID != "3" {
		t.Errorf("Expected newest-first ordering [9800, 3], got [%s, %s]",
			records[0].NFTDetails.TokenID, records[1].NFTDetails.TokenID)
	}
	if !records[0].BurnedAt.After(records[1].BurnedAt) {
		t.Errorf("Expected descending burned_at, got %v then %v",
			records[0].BurnedAt, records[1].BurnedAt)
	}
}

func TestBurnRepository_ListEmptyIntegration(t *testing.T) {
	db := connectTestPostgres(t)
	repo := NewBurnRepository(db)
	ctx := testContext(t)

	records, err := repo.List(ctx, testWallet(t))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if records == nil {
		t.Error("Expected non-nil empty slice for empty history")
	}
	if len(records) != 0 {
		t.Errorf("Expected 0 records, got %d", len(records))
	}
}

func TestBurnRepository_CountByWalletIntegration(t *testing.T) {
	db := connectTestPostgres(t)
	repo := NewBurnRepository(db)
	ctx := testContext(t)

	wallet := testWallet(t)
	cleanupWallet(t, db, wallet)

	record := &models.BurnRecord{
		WalletAddress: wallet,
		NFTDetails: types.NFTDetails{
			ContractAddress: "0x5099d14fbdc58039d68db2eb4fa3fa939da668b1",
			TokenID:         "3600",
			Name:            "Nomaimai #3600",
		},
		PointsReceived: 10,
	}
	if err := repo.Insert(ctx, record); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	count, err := repo.CountByWallet(ctx, wallet)
	if err != nil {
		t.Fatalf("CountByWallet() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
}
