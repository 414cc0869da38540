package audit

import (
	"maps"
	"sync"
	"time"

	"btcwallet/internal/domain"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Filter narrows a Query. Zero-valued fields match everything; the rest are
// combined with AND. Start and End are inclusive.
type Filter struct {
	Name  string
	Start time.Time
	End   time.Time
}

func (f Filter) matches(e domain.AuditEvent) bool {
	if f.Name != "" && e.Name != f.Name {
		return false
	}
	if !f.Start.IsZero() && e.OccurredAt.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && e.OccurredAt.After(f.End) {
		return false
	}
	return true
}

// MemorySink is an append-only, process-lifetime audit log.
type MemorySink struct {
	clock clockwork.Clock

	mu     sync.RWMutex
	events []domain.AuditEvent
}

// Record appends event. It never fails: the caller's work must not depend on
// audit bookkeeping.
func (s *MemorySink) Record(event domain.AuditEvent) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.clock.Now()
	}
	event.Parameters = maps.Clone(event.Parameters)

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"event_id":    event.ID,
		"event":       event.Name,
		"parameters":  event.Parameters,
		"occurred_at": event.OccurredAt,
	}).Debug("Audit event recorded")
}

// Query returns matching events in insertion order.
func (s *MemorySink) Query(filter Filter) []domain.AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]domain.AuditEvent, 0, len(s.events))
	for _, e := range s.events {
		if !filter.matches(e) {
			continue
		}
		e.Parameters = maps.Clone(e.Parameters)
		res = append(res, e)
	}
	return res
}

func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func NewMemorySink(clock clockwork.Clock) *MemorySink {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemorySink{clock: clock}
}
