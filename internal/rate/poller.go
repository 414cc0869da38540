package rate

import (
	"context"
	"errors"
	"sync"
	"time"

	"btcwallet/internal/adapters"
	"btcwallet/internal/domain"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DefaultRatePrecision = 4

var ErrInvalidInterval = errors.New("poll interval must be positive")

var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

type PollerState int

const (
	StateIdle PollerState = iota
	StateRunning
	StateStopping
)

func (s PollerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// RateListener is notified from the polling goroutine after every successful
// fetch. It must not call Poller.Stop, which would wait on its own goroutine;
// use Poller.RequestStop instead.
type RateListener interface {
	OnRateUpdated(ctx context.Context, quote domain.RateQuote) error
}

type RateListenerFunc func(ctx context.Context, quote domain.RateQuote) error

func (f RateListenerFunc) OnRateUpdated(ctx context.Context, quote domain.RateQuote) error {
	return f(ctx, quote)
}

type Option func(*Poller)

func WithClock(clock clockwork.Clock) Option {
	return func(p *Poller) { p.clock = clock }
}

// WithRatePrecision sets the number of decimals used for the "rate" audit parameter.
func WithRatePrecision(precision int32) Option {
	return func(p *Poller) { p.precision = precision }
}

// Poller keeps the last known good rate fresh. Scheduling is fixed-delay: the
// next fetch starts interval after the previous one finished, so at most one
// fetch is in flight.
type Poller struct {
	fetcher   adapters.RateFetcher
	sink      adapters.EventSink
	listener  RateListener
	clock     clockwork.Clock
	precision int32

	mu      sync.Mutex
	state   PollerState
	current domain.RateQuote
	hasRate bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Start launches the polling loop. It is a no-op while the poller is running,
// the interval of the existing loop is kept. ctx bounds the loop's lifetime
// and is passed to every fetch.
func (p *Poller) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	for {
		p.mu.Lock()
		switch p.state {
		case StateRunning:
			p.mu.Unlock()
			return nil
		case StateStopping:
			done := p.doneCh
			p.mu.Unlock()
			<-done
			continue
		}

		p.state = StateRunning
		p.stopCh = make(chan struct{})
		p.doneCh = make(chan struct{})
		stopCh, doneCh := p.stopCh, p.doneCh
		p.mu.Unlock()

		logrus.WithField("interval", interval.String()).Info("Rate poller started")
		go p.run(ctx, interval, stopCh, doneCh)
		return nil
	}
}

// Stop asks the loop to exit and blocks until it has. A fetch in flight is
// allowed to finish and its result is applied before the poller becomes idle.
// Calling Stop from a RateListener deadlocks; use RequestStop there.
func (p *Poller) Stop() {
	<-p.RequestStop()
}

// RequestStop asks the loop to exit without waiting. The returned channel is
// closed once the poller is idle. Safe to call from a RateListener.
func (p *Poller) RequestStop() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateIdle:
		return closedCh
	case StateRunning:
		p.state = StateStopping
		close(p.stopCh)
	}
	return p.doneCh
}

// CurrentRate returns the last successfully fetched quote; ok is false until
// the first fetch succeeds.
func (p *Poller) CurrentRate() (quote domain.RateQuote, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.hasRate
}

func (p *Poller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) run(ctx context.Context, interval time.Duration, stopCh, doneCh chan struct{}) {
	defer func() {
		p.mu.Lock()
		p.state = StateIdle
		close(doneCh)
		p.mu.Unlock()
		logrus.Info("Rate poller stopped")
	}()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		p.tick(ctx)

		timer := p.clock.NewTimer(interval)
		select {
		case <-stopCh:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	log := logrus.WithField("tick_id", uuid.NewString())

	quote, err := p.fetcher.Fetch(ctx)
	if err != nil {
		log.WithError(err).Warn("Rate fetch failed, keeping last known rate")
		return
	}

	p.mu.Lock()
	p.current = quote
	p.hasRate = true
	p.mu.Unlock()

	p.recordUpdate(log, quote)

	if p.listener != nil {
		if lErr := p.listener.OnRateUpdated(ctx, quote); lErr != nil {
			log.WithError(lErr).Error("Rate listener failed")
		}
	}
	log.WithField("rate", quote.Rate).Info("Rate updated")
}

func (p *Poller) recordUpdate(log *logrus.Entry, quote domain.RateQuote) {
	// sinks are best-effort
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Audit sink failed to record rate update")
		}
	}()

	p.sink.Record(domain.AuditEvent{
		ID:         uuid.New(),
		Name:       domain.EventBitcoinRateUpdate,
		Parameters: map[string]string{"rate": FormatRate(quote.Rate, p.precision)},
		OccurredAt: p.clock.Now(),
	})
}

// FormatRate renders rate with a fixed number of decimals, e.g. 65000.1234 -> "65000.1234".
func FormatRate(rate float64, precision int32) string {
	return decimal.NewFromFloat(rate).StringFixed(precision)
}

func NewPoller(fetcher adapters.RateFetcher, sink adapters.EventSink, listener RateListener, opts ...Option) *Poller {
	p := &Poller{
		fetcher:   fetcher,
		sink:      sink,
		listener:  listener,
		clock:     clockwork.NewRealClock(),
		precision: DefaultRatePrecision,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
