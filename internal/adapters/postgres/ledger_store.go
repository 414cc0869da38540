package postgres

import (
	"context"
	"errors"
	"fmt"

	"btcwallet/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerStore persists the single wallet row and its transactions.
type LedgerStore struct {
	pool *pgxpool.Pool
}

func (s *LedgerStore) GetWallet(ctx context.Context) (domain.Wallet, error) {
	const q = `select balance, cached_rate, last_updated from wallets where id = 1;`

	var w domain.Wallet
	if err := s.pool.QueryRow(ctx, q).Scan(&w.Balance, &w.CachedRate, &w.LastUpdated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Wallet{}, domain.ErrWalletNotFound
		}
		return domain.Wallet{}, fmt.Errorf("failed to select wallet: %w", err)
	}
	return w, nil
}

func (s *LedgerStore) CreateWallet(ctx context.Context) (domain.Wallet, error) {
	const q = `
		insert into wallets (id, balance, cached_rate, last_updated)
		values (1, 0, 0, now())
		on conflict (id) do nothing
		returning balance, cached_rate, last_updated;
	`

	var w domain.Wallet
	err := s.pool.QueryRow(ctx, q).Scan(&w.Balance, &w.CachedRate, &w.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		// someone else created it first
		return s.GetWallet(ctx)
	}
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("failed to insert wallet: %w", err)
	}
	return w, nil
}

func (s *LedgerStore) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	return updateWallet(ctx, s.pool, wallet)
}

func (s *LedgerStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	const q = `select id, amount, category, created_at from transactions order by created_at desc, id;`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0, 64)
	for rows.Next() {
		var tx domain.Transaction
		if err = rows.Scan(&tx.ID, &tx.Amount, &tx.Category, &tx.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

func (s *LedgerStore) ApplyTransaction(ctx context.Context, wallet domain.Wallet, tx domain.Transaction) error {
	return pgx.BeginFunc(ctx, s.pool, func(dbTx pgx.Tx) error {
		if err := updateWallet(ctx, dbTx, wallet); err != nil {
			return err
		}
		return insertTransaction(ctx, dbTx, tx)
	})
}

// execer is satisfied by both the pool and a pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func updateWallet(ctx context.Context, db execer, wallet domain.Wallet) error {
	const q = `update wallets set balance = $1, cached_rate = $2, last_updated = $3 where id = 1;`

	tag, err := db.Exec(ctx, q, wallet.Balance, wallet.CachedRate, wallet.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

func insertTransaction(ctx context.Context, db execer, tx domain.Transaction) error {
	const q = `insert into transactions (id, amount, category, created_at) values ($1, $2, $3, $4);`

	if _, err := db.Exec(ctx, q, tx.ID, tx.Amount, tx.Category, tx.Date); err != nil {
		return fmt.Errorf("failed to insert transaction %q: %w", tx.ID, err)
	}
	return nil
}

func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}
