package rate

import (
	"context"
	"sync"
	"time"

	"btcwallet/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	defaultMonitorInterval = time.Minute
	defaultMaxRateAge      = 5 * time.Minute
)

type RateSource interface {
	CurrentRate() (domain.RateQuote, bool)
}

// Freshness describes how old the cached rate is.
type Freshness struct {
	HasRate bool
	Age     time.Duration
	Stale   bool
}

func CheckFreshness(quote domain.RateQuote, ok bool, now time.Time, maxAge time.Duration) Freshness {
	if !ok {
		return Freshness{Stale: true}
	}
	age := now.Sub(quote.ObservedAt)
	return Freshness{HasRate: true, Age: age, Stale: age > maxAge}
}

// StalenessMonitor periodically reports when the cached rate has not been
// refreshed for longer than maxAge.
type StalenessMonitor struct {
	source   RateSource
	interval time.Duration
	maxAge   time.Duration
	clock    clockwork.Clock
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (m *StalenessMonitor) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithClock(m.clock))
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(m.check),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	m.mu.Lock()
	m.sched = scheduler
	m.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := m.Shutdown(); sdErr != nil {
			logrus.Errorf("Staleness monitor shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (m *StalenessMonitor) Shutdown() error {
	m.mu.Lock()
	sched := m.sched
	m.sched = nil
	m.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

// Freshness reports the current state without waiting for the next job run.
func (m *StalenessMonitor) Freshness() Freshness {
	quote, ok := m.source.CurrentRate()
	return CheckFreshness(quote, ok, m.clock.Now(), m.maxAge)
}

func (m *StalenessMonitor) check() {
	f := m.Freshness()
	switch {
	case !f.HasRate:
		logrus.Warn("No exchange rate fetched yet")
	case f.Stale:
		logrus.WithFields(logrus.Fields{"age": f.Age.String(), "max_age": m.maxAge.String()}).Warn("Cached exchange rate is stale")
	default:
		logrus.WithField("age", f.Age.String()).Debug("Cached exchange rate is fresh")
	}
}

func NewStalenessMonitor(source RateSource, interval, maxAge time.Duration, clock clockwork.Clock) *StalenessMonitor {
	if interval <= 0 {
		interval = defaultMonitorInterval
	}
	if maxAge <= 0 {
		maxAge = defaultMaxRateAge
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StalenessMonitor{source: source, interval: interval, maxAge: maxAge, clock: clock}
}
