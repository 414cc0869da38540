package adapters

import (
	"context"

	"btcwallet/internal/domain"
)

type RateFetcher interface {
	Fetch(ctx context.Context) (domain.RateQuote, error)
}

type EventSink interface {
	Record(event domain.AuditEvent)
}

type LedgerStore interface {
	GetWallet(ctx context.Context) (domain.Wallet, error)
	CreateWallet(ctx context.Context) (domain.Wallet, error)
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	// ApplyTransaction stores wallet and appends tx atomically: either both are written or neither.
	ApplyTransaction(ctx context.Context, wallet domain.Wallet, tx domain.Transaction) error
}

type WalletCache interface {
	Get() (domain.Wallet, bool)
	Set(wallet domain.Wallet)
	Invalidate()
}
