package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"btcwallet/internal/adapters/postgres"
	"btcwallet/internal/domain"
	"btcwallet/internal/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, resetDatabase(ctx, pool))

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	require.NoError(t, db.Migrate(ctx, pool))

	pgContainer = pg
	pgConnStr = dsn
}

func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `truncate table transactions, wallets`); err != nil {
		return err
	}
	return nil
}

// ---------- wallet ----------

func TestLedgerStore_GetWallet_NotFound(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)

	_, err := store.GetWallet(context.Background())
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestLedgerStore_GetWallet_DBError(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)

	// Use a canceled context to force an error path distinct from ErrWalletNotFound.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.GetWallet(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestLedgerStore_CreateWallet_Zeroed(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	w, err := store.CreateWallet(ctx)
	require.NoError(t, err)
	require.Zero(t, w.Balance)
	require.Zero(t, w.CachedRate)
	require.False(t, w.LastUpdated.IsZero())

	got, err := store.GetWallet(ctx)
	require.NoError(t, err)
	require.Zero(t, got.Balance)
}

func TestLedgerStore_CreateWallet_KeepsExisting(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	_, err := store.CreateWallet(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveWallet(ctx, domain.Wallet{Balance: 2.5, CachedRate: 100, LastUpdated: time.Now()}))

	w, err := store.CreateWallet(ctx)
	require.NoError(t, err)
	require.InDelta(t, 2.5, w.Balance, 1e-9)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from wallets`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestLedgerStore_SaveWallet_RoundTrip(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	_, err := store.CreateWallet(ctx)
	require.NoError(t, err)

	updated := time.Date(2025, 1, 20, 10, 30, 0, 0, time.UTC)
	require.NoError(t, store.SaveWallet(ctx, domain.Wallet{Balance: -0.25, CachedRate: 65000.1234, LastUpdated: updated}))

	w, err := store.GetWallet(ctx)
	require.NoError(t, err)
	require.InDelta(t, -0.25, w.Balance, 1e-9)
	require.InDelta(t, 65000.1234, w.CachedRate, 1e-9)
	require.True(t, updated.Equal(w.LastUpdated))
}

func TestLedgerStore_SaveWallet_NotFound(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)

	err := store.SaveWallet(context.Background(), domain.Wallet{Balance: 1})
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}

// ---------- transactions ----------

func TestLedgerStore_ListTransactions_Empty(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)

	txs, err := store.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestLedgerStore_ListTransactions_NewestFirst(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	base := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	oldest := domain.Transaction{ID: uuid.New(), Amount: 1, Category: domain.CategoryDeposit, Date: base}
	middle := domain.Transaction{ID: uuid.New(), Amount: 0.1, Category: "Taxi", Date: base.Add(time.Hour)}
	newest := domain.Transaction{ID: uuid.New(), Amount: 0.2, Category: "Groceries", Date: base.Add(48 * time.Hour)}

	_, err := store.CreateWallet(ctx)
	require.NoError(t, err)
	for i, tx := range []domain.Transaction{middle, newest, oldest} {
		require.NoError(t, store.ApplyTransaction(ctx, domain.Wallet{Balance: float64(i + 1), LastUpdated: base}, tx))
	}

	txs, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	require.Equal(t, newest.ID, txs[0].ID)
	require.Equal(t, middle.ID, txs[1].ID)
	require.Equal(t, oldest.ID, txs[2].ID)
	require.Equal(t, "Taxi", txs[1].Category)
	require.InDelta(t, 0.1, txs[1].Amount, 1e-9)
}

func TestLedgerStore_ApplyTransaction_WritesBoth(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	_, err := store.CreateWallet(ctx)
	require.NoError(t, err)

	tx := domain.Transaction{ID: uuid.New(), Amount: 5, Category: domain.CategoryDeposit, Date: time.Now()}
	require.NoError(t, store.ApplyTransaction(ctx, domain.Wallet{Balance: 5, LastUpdated: time.Now()}, tx))

	w, err := store.GetWallet(ctx)
	require.NoError(t, err)
	require.InDelta(t, 5, w.Balance, 1e-9)

	txs, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, tx.ID, txs[0].ID)
}

func TestLedgerStore_ApplyTransaction_InsertFails_RollsBackBalance(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	_, err := store.CreateWallet(ctx)
	require.NoError(t, err)

	tx := domain.Transaction{ID: uuid.New(), Amount: 10, Category: domain.CategoryDeposit, Date: time.Now()}
	require.NoError(t, store.ApplyTransaction(ctx, domain.Wallet{Balance: 10, LastUpdated: time.Now()}, tx))

	// same id violates the primary key, so the balance update must not survive
	err = store.ApplyTransaction(ctx, domain.Wallet{Balance: 15, LastUpdated: time.Now()}, tx)
	require.Error(t, err)

	w, err := store.GetWallet(ctx)
	require.NoError(t, err)
	require.InDelta(t, 10, w.Balance, 1e-9)

	txs, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestLedgerStore_ApplyTransaction_NoWallet_NoTransactionRow(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)
	ctx := context.Background()

	tx := domain.Transaction{ID: uuid.New(), Amount: 1, Category: domain.CategoryDeposit, Date: time.Now()}
	err := store.ApplyTransaction(ctx, domain.Wallet{Balance: 1}, tx)
	require.ErrorIs(t, err, domain.ErrWalletNotFound)

	txs, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestLedgerStore_ListTransactions_DBError(t *testing.T) {
	pool := setupPostgres(t)
	store := postgres.NewLedgerStore(pool)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListTransactions(ctx)
	require.Error(t, err)
}
