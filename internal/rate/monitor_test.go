package rate

import (
	"context"
	"testing"
	"time"

	"btcwallet/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateSource struct{ mock.Mock }

func (m *MockRateSource) CurrentRate() (domain.RateQuote, bool) {
	args := m.Called()
	q, _ := args.Get(0).(domain.RateQuote)
	return q, args.Bool(1)
}

func TestCheckFreshness(t *testing.T) {
	now := t0.Add(10 * time.Minute)

	f := CheckFreshness(domain.RateQuote{}, false, now, time.Minute)
	require.False(t, f.HasRate)
	require.True(t, f.Stale)

	f = CheckFreshness(domain.RateQuote{Rate: 1, ObservedAt: now.Add(-30 * time.Second)}, true, now, time.Minute)
	require.True(t, f.HasRate)
	require.False(t, f.Stale)
	require.Equal(t, 30*time.Second, f.Age)

	f = CheckFreshness(domain.RateQuote{Rate: 1, ObservedAt: now.Add(-time.Minute)}, true, now, time.Minute)
	require.False(t, f.Stale, "age equal to max age is still fresh")

	f = CheckFreshness(domain.RateQuote{Rate: 1, ObservedAt: now.Add(-2 * time.Minute)}, true, now, time.Minute)
	require.True(t, f.Stale)
}

func TestNewStalenessMonitor_Constructs(t *testing.T) {
	m := NewStalenessMonitor(new(MockRateSource), 10*time.Second, time.Minute, nil)
	require.NotNil(t, m)
	require.Nil(t, m.sched)
	require.Equal(t, 10*time.Second, m.interval)
	require.Equal(t, time.Minute, m.maxAge)
}

func TestNewStalenessMonitor_DefaultsWhenInvalid(t *testing.T) {
	m := NewStalenessMonitor(new(MockRateSource), 0, -time.Second, nil)
	require.Equal(t, defaultMonitorInterval, m.interval)
	require.Equal(t, defaultMaxRateAge, m.maxAge)
}

func TestStalenessMonitor_Shutdown_NoScheduler_ReturnsNil(t *testing.T) {
	m := NewStalenessMonitor(new(MockRateSource), 10*time.Second, time.Minute, nil)
	require.NoError(t, m.Shutdown())
	require.Nil(t, m.sched)
}

func TestStalenessMonitor_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	source := new(MockRateSource)
	source.On("CurrentRate").Return(domain.RateQuote{}, false).Maybe()
	m := NewStalenessMonitor(source, 10*time.Second, time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, m.Start(ctx))
	m.mu.Lock()
	require.NotNil(t, m.sched)
	m.mu.Unlock()

	cancel()

	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.sched == nil
	}, 2*time.Second, 10*time.Millisecond, "expected monitor to be shutdown after ctx cancel")
}

func TestStalenessMonitor_Shutdown_AfterStart_Idempotent(t *testing.T) {
	source := new(MockRateSource)
	source.On("CurrentRate").Return(domain.RateQuote{}, false).Maybe()
	m := NewStalenessMonitor(source, 10*time.Second, time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, m.Start(ctx))
	require.NoError(t, m.Shutdown())
	require.Nil(t, m.sched)
	require.NoError(t, m.Shutdown())
}

func TestStalenessMonitor_Freshness_UsesClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	source := new(MockRateSource)
	source.On("CurrentRate").Return(domain.RateQuote{Rate: 1, ObservedAt: t0}, true)
	m := NewStalenessMonitor(source, time.Minute, 5*time.Minute, clock)

	require.False(t, m.Freshness().Stale)

	clock.Advance(6 * time.Minute)
	f := m.Freshness()
	require.True(t, f.Stale)
	require.Equal(t, 6*time.Minute, f.Age)
}

func TestStalenessMonitor_JobRunsOnSchedule(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	checked := make(chan struct{}, 8)
	source := new(MockRateSource)
	source.On("CurrentRate").Run(func(mock.Arguments) {
		select {
		case checked <- struct{}{}:
		default:
		}
	}).Return(domain.RateQuote{Rate: 1, ObservedAt: t0}, true)

	m := NewStalenessMonitor(source, time.Minute, 5*time.Minute, clock)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))
	defer func() { _ = m.Shutdown() }()

	require.Eventually(t, func() bool {
		clock.Advance(time.Minute)
		select {
		case <-checked:
			return true
		default:
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)
}
