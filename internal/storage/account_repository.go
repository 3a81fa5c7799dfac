package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/burn-exchange/internal/models"
	"github.com/jackc/pgx/v5"
)

// AccountRepository handles the per-wallet points ledger.
type AccountRepository struct {
	db *PostgresDB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *PostgresDB) *AccountRepository {
	return &AccountRepository{db: db}
}

// AccrualInput is the merge applied to an account when points are accrued.
type AccrualInput struct {
	WalletAddress string
	Points        int
	Email         string
	TermsAgreed   bool
}

// ApplyAccrual creates the account if absent or merges into it if present,
// in a single statement. Concurrent accruals for the same wallet serialize
// on the row; two requests can never both observe "absent" and double-create.
//
// Merge rules: points are added to the running total, email is set only when
// currently NULL, termsAgreed only transitions false to true and stamps
// terms_agreed_at the first time it does.
func (r *AccountRepository) ApplyAccrual(ctx context.Context, input *AccrualInput) (*models.UserAccount, error) {
	query := `
		INSERT INTO user_accounts (wallet_address, points, email, terms_agreed, terms_agreed_at, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, CASE WHEN $4 THEN now() END, now(), now())
		ON CONFLICT (wallet_address) DO UPDATE SET
			points          = user_accounts.points + EXCLUDED.points,
			email           = COALESCE(user_accounts.email, EXCLUDED.email),
			terms_agreed    = user_accounts.terms_agreed OR EXCLUDED.terms_agreed,
			terms_agreed_at = CASE
				WHEN NOT user_accounts.terms_agreed AND EXCLUDED.terms_agreed THEN now()
				ELSE user_accounts.terms_agreed_at
			END,
			updated_at      = now()
		RETURNING wallet_address, points, email, terms_agreed, terms_agreed_at, created_at, updated_at
	`

	var account models.UserAccount
	err := r.db.Pool().QueryRow(ctx, query,
		strings.ToLower(input.WalletAddress),
		input.Points,
		input.Email,
		input.TermsAgreed,
	).Scan(
		&account.WalletAddress,
		&account.Points,
		&account.Email,
		&account.TermsAgreed,
		&account.TermsAgreedAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to apply accrual: %w", err)
	}

	return &account, nil
}

// Get retrieves an account by wallet address, or nil if none exists.
func (r *AccountRepository) Get(ctx context.Context, walletAddress string) (*models.UserAccount, error) {
	query := `
		SELECT wallet_address, points, email, terms_agreed, terms_agreed_at, created_at, updated_at
		FROM user_accounts
		WHERE wallet_address = $1
	`

	var account models.UserAccount
	err := r.db.Pool().QueryRow(ctx, query, strings.ToLower(walletAddress)).Scan(
		&account.WalletAddress,
		&account.Points,
		&account.Email,
		&account.TermsAgreed,
		&account.TermsAgreedAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// Points returns the current balance for a wallet. Wallets with no account
// have a balance of zero.
func (r *AccountRepository) Points(ctx context.Context, walletAddress string) (int64, error) {
	account, err := r.Get(ctx, walletAddress)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, nil
	}
	return account.Points, nil
}
