package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"btcwallet/internal/adapters"
	"btcwallet/internal/domain"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Service is the wallet/transaction bookkeeping around a LedgerStore. It is
// also the poller's rate listener: every new quote is cached on the wallet so
// the last rate survives restarts and offline periods.
type Service struct {
	store      adapters.LedgerStore
	cache      adapters.WalletCache
	categories *CategoryValidator
	clock      clockwork.Clock

	// serializes read-modify-write of the wallet row
	mu sync.Mutex
}

// Wallet returns the wallet, creating a zeroed one on first use.
func (s *Service) Wallet(ctx context.Context) (domain.Wallet, error) {
	if s.cache != nil {
		if w, ok := s.cache.Get(); ok {
			return w, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrCreate(ctx)
}

func (s *Service) Deposit(ctx context.Context, amount float64) (domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return domain.Transaction{}, err
	}
	return s.apply(ctx, amount, domain.CategoryDeposit)
}

// Spend records an expense. Overdraft is not prevented: the balance may go negative.
func (s *Service) Spend(ctx context.Context, amount float64, category string) (domain.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.categories.ValidateCategory(category); err != nil {
		return domain.Transaction{}, err
	}
	return s.apply(ctx, -amount, category)
}

// Categories lists the accepted expense categories, sorted.
func (s *Service) Categories() []string {
	return s.categories.SupportedCategories()
}

func (s *Service) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// TransactionsByDay groups transactions by UTC calendar day, newest day first.
func (s *Service) TransactionsByDay(ctx context.Context) ([]domain.TransactionDay, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByDay(txs), nil
}

// OnRateUpdated stores the quote on the wallet.
func (s *Service) OnRateUpdated(ctx context.Context, quote domain.RateQuote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.loadOrCreate(ctx)
	if err != nil {
		return err
	}
	w.CachedRate = quote.Rate
	w.LastUpdated = quote.ObservedAt
	if err = s.save(ctx, w); err != nil {
		return fmt.Errorf("failed to cache rate: %w", err)
	}
	return nil
}

func (s *Service) apply(ctx context.Context, delta float64, category string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.loadOrCreate(ctx)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		ID:       uuid.New(),
		Amount:   math.Abs(delta),
		Category: category,
		Date:     s.clock.Now().UTC(),
	}
	w.Balance += delta
	if s.cache != nil {
		s.cache.Invalidate()
	}
	if err = s.store.ApplyTransaction(ctx, w, tx); err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to record transaction: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"category":       tx.Category,
		"amount":         tx.Amount,
		"balance":        w.Balance,
	}).Info("Transaction recorded")
	return tx, nil
}

func (s *Service) loadOrCreate(ctx context.Context) (domain.Wallet, error) {
	w, err := s.store.GetWallet(ctx)
	if errors.Is(err, domain.ErrWalletNotFound) {
		w, err = s.store.CreateWallet(ctx)
		if err == nil {
			logrus.Info("Wallet created")
		}
	}
	if err != nil {
		return domain.Wallet{}, err
	}
	if s.cache != nil {
		s.cache.Set(w)
	}
	return w, nil
}

func (s *Service) save(ctx context.Context, w domain.Wallet) error {
	if s.cache != nil {
		s.cache.Invalidate()
	}
	return s.store.SaveWallet(ctx, w)
}

func GroupByDay(txs []domain.Transaction) []domain.TransactionDay {
	byDay := make(map[time.Time][]domain.Transaction)
	for _, tx := range txs {
		day := tx.Date.UTC().Truncate(24 * time.Hour)
		byDay[day] = append(byDay[day], tx)
	}

	days := make([]domain.TransactionDay, 0, len(byDay))
	for day, dayTxs := range byDay {
		days = append(days, domain.TransactionDay{Day: day, Transactions: dayTxs})
	}
	slices.SortFunc(days, func(a, b domain.TransactionDay) int {
		return b.Day.Compare(a.Day)
	})
	return days
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

func NewService(store adapters.LedgerStore, cache adapters.WalletCache, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		store:      store,
		cache:      cache,
		categories: NewCategoryValidator(domain.ExpenseCategories),
		clock:      clock,
	}
}
