package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
	"github.com/minegram/minegram/internal/domain/repository"
)

// pgxPool is the pool surface the storage depends on; *pgxpool.Pool and
// pgxmock pools both satisfy it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type accountRepository struct {
	storage *Storage
}

type coinRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Coins() repository.CoinRepository {
	return &coinRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id SERIAL PRIMARY KEY,
            tg_id BIGINT UNIQUE NOT NULL,
            username TEXT NOT NULL,
            password_hash TEXT NOT NULL DEFAULT '',
            balance DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (balance >= 0),
            status TEXT NOT NULL DEFAULT 'active',
            email TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS coins (
            symbol TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            min_withdrawal DOUBLE PRECISION NOT NULL DEFAULT 100,
            max_withdrawal DOUBLE PRECISION NOT NULL DEFAULT 10000,
            icon_url TEXT NOT NULL DEFAULT '',
            is_active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawals (
            id SERIAL PRIMARY KEY,
            tg_id BIGINT NOT NULL REFERENCES accounts(tg_id),
            coin TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            platform TEXT NOT NULL DEFAULT 'FaucetPay',
            email TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'Pending',
            provider_ref TEXT NOT NULL DEFAULT '',
            reject_reason TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_tg ON withdrawals(tg_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals(status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func (r *accountRepository) GetOrCreate(ctx context.Context, tgID int64, username string) (*model.Account, bool, error) {
	const query = `INSERT INTO accounts (tg_id, username) VALUES ($1, $2)
                   ON CONFLICT (tg_id) DO NOTHING
                   RETURNING id, password_hash, balance, status, email, created_at`
	var acct model.Account
	err := r.storage.pool.QueryRow(ctx, query, tgID, username).
		Scan(&acct.ID, &acct.PasswordHash, &acct.Balance, &acct.Status, &acct.Email, &acct.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByTgID(ctx, tgID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	acct.TgID = tgID
	acct.Username = username
	return &acct, true, nil
}

func (r *accountRepository) GetByTgID(ctx context.Context, tgID int64) (*model.Account, error) {
	const query = `SELECT id, tg_id, username, password_hash, balance, status, email, created_at
                   FROM accounts WHERE tg_id=$1`
	var acct model.Account
	err := r.storage.pool.QueryRow(ctx, query, tgID).
		Scan(&acct.ID, &acct.TgID, &acct.Username, &acct.PasswordHash, &acct.Balance, &acct.Status, &acct.Email, &acct.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &acct, nil
}

// Credit applies a balance delta in a single statement so concurrent
// rewards never lose updates. Only active accounts earn rewards; a
// banned account is reported as such rather than silently credited.
func (r *accountRepository) Credit(ctx context.Context, tgID int64, amount float64) (float64, error) {
	const query = `UPDATE accounts SET balance = balance + $2
	               WHERE tg_id=$1 AND status=$3 RETURNING balance`
	var balance float64
	err := r.storage.pool.QueryRow(ctx, query, tgID, amount, model.AccountStatusActive).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, lookupErr := r.GetByTgID(ctx, tgID); lookupErr != nil {
				return 0, lookupErr
			}
			return 0, domainErrors.ErrAccountBanned
		}
		return 0, err
	}
	return balance, nil
}

func (r *coinRepository) ListActive(ctx context.Context) ([]model.Coin, error) {
	const query = `SELECT symbol, name, min_withdrawal, max_withdrawal, icon_url, is_active
                   FROM coins WHERE is_active ORDER BY symbol`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Coin
	for rows.Next() {
		var c model.Coin
		if err := rows.Scan(&c.Symbol, &c.Name, &c.MinWithdrawal, &c.MaxWithdrawal, &c.IconURL, &c.IsActive); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *coinRepository) Get(ctx context.Context, symbol string) (*model.Coin, error) {
	const query = `SELECT symbol, name, min_withdrawal, max_withdrawal, icon_url, is_active
                   FROM coins WHERE symbol=$1`
	var c model.Coin
	err := r.storage.pool.QueryRow(ctx, query, symbol).
		Scan(&c.Symbol, &c.Name, &c.MinWithdrawal, &c.MaxWithdrawal, &c.IconURL, &c.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// SeedIfEmpty populates the coin catalogue once; a non-empty table is
// left untouched so operator edits survive restarts. The insert
// tolerates symbol conflicts so two instances seeding at the same time
// both start cleanly.
func (r *coinRepository) SeedIfEmpty(ctx context.Context, defaults []model.Coin) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var count int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM coins`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		const insertQuery = `INSERT INTO coins (symbol, name, min_withdrawal, max_withdrawal, icon_url, is_active)
                             VALUES ($1, $2, $3, $4, $5, $6)
                             ON CONFLICT (symbol) DO NOTHING`
		for _, c := range defaults {
			if _, err := tx.Exec(ctx, insertQuery, c.Symbol, c.Name, c.MinWithdrawal, c.MaxWithdrawal, c.IconURL, c.IsActive); err != nil {
				return err
			}
		}
		return nil
	})
}

// Create debits the account and records the withdrawal in one
// transaction; the row lock on the account serializes concurrent
// requests so the balance cannot go negative.
func (r *withdrawalRepository) Create(ctx context.Context, tgID int64, coin string, amount float64, email string) (*model.Withdrawal, error) {
	var w model.Withdrawal
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var balance float64
		var status model.AccountStatus
		err := tx.QueryRow(ctx, `SELECT balance, status FROM accounts WHERE tg_id=$1 FOR UPDATE`, tgID).
			Scan(&balance, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if status != model.AccountStatusActive {
			return domainErrors.ErrAccountBanned
		}
		if balance < amount {
			return domainErrors.ErrInsufficientBalance
		}

		if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance - $2, email = $3 WHERE tg_id=$1`, tgID, amount, email); err != nil {
			return err
		}

		const insertQuery = `INSERT INTO withdrawals (tg_id, coin, amount, platform, email, status)
                             VALUES ($1, $2, $3, $4, $5, $6)
                             RETURNING id, created_at, updated_at`
		return tx.QueryRow(ctx, insertQuery, tgID, coin, amount, model.DefaultPayoutPlatform, email, model.WithdrawalStatusPending).
			Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}

	w.TgID = tgID
	w.Coin = coin
	w.Amount = amount
	w.Platform = model.DefaultPayoutPlatform
	w.Email = email
	w.Status = model.WithdrawalStatusPending
	return &w, nil
}

func (r *withdrawalRepository) ListByTgID(ctx context.Context, tgID int64, limit int) ([]model.Withdrawal, error) {
	const query = `SELECT id, tg_id, coin, amount, platform, email, status, provider_ref, reject_reason, created_at, updated_at
                   FROM withdrawals WHERE tg_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, tgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Withdrawal
	for rows.Next() {
		var w model.Withdrawal
		if err := rows.Scan(&w.ID, &w.TgID, &w.Coin, &w.Amount, &w.Platform, &w.Email, &w.Status, &w.ProviderRef, &w.RejectReason, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SelectBatchForSubmission claims pending withdrawals for the payout
// dispatcher. SKIP LOCKED keeps concurrent dispatchers from picking
// the same rows, and the move to Submitting inside the claim
// transaction keeps later polls from re-claiming a batch whose
// submission outlives one poll interval.
func (r *withdrawalRepository) SelectBatchForSubmission(ctx context.Context, limit int) ([]model.Withdrawal, error) {
	const selectQuery = `SELECT id, tg_id, coin, amount, platform, email, status, provider_ref, reject_reason, created_at, updated_at
                         FROM withdrawals
                         WHERE status = 'Pending'
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var withdrawals []model.Withdrawal
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var w model.Withdrawal
			if err := rows.Scan(&w.ID, &w.TgID, &w.Coin, &w.Amount, &w.Platform, &w.Email, &w.Status, &w.ProviderRef, &w.RejectReason, &w.CreatedAt, &w.UpdatedAt); err != nil {
				return err
			}
			withdrawals = append(withdrawals, w)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range withdrawals {
			if _, err := tx.Exec(ctx, `UPDATE withdrawals SET status=$2, updated_at=NOW() WHERE id=$1`, withdrawals[i].ID, model.WithdrawalStatusSubmitting); err != nil {
				return err
			}
			withdrawals[i].Status = model.WithdrawalStatusSubmitting
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return withdrawals, nil
}

func (r *withdrawalRepository) MarkSubmitted(ctx context.Context, id int64, providerRef string) error {
	const query = `UPDATE withdrawals SET status=$2, provider_ref=$3, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.WithdrawalStatusApproved, providerRef)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *withdrawalRepository) MarkRejected(ctx context.Context, id int64, reason string) error {
	const query = `UPDATE withdrawals SET status=$2, reject_reason=$3, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.WithdrawalStatusRejected, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	r.storage.logger.Info("withdrawal rejected", slog.Int64("id", id), slog.String("reason", reason))
	return nil
}

// Release returns a claimed withdrawal to Pending for a later retry.
// Only Submitting rows move; a withdrawal already resolved by another
// path stays where it is.
func (r *withdrawalRepository) Release(ctx context.Context, id int64) error {
	const query = `UPDATE withdrawals SET status=$2, updated_at=NOW() WHERE id=$1 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.WithdrawalStatusPending, model.WithdrawalStatusSubmitting)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
