package domain

import (
	"time"

	"github.com/google/uuid"
)

const EventBitcoinRateUpdate = "bitcoin_rate_update"

// AuditEvent is an immutable record of something worth auditing. Parameters
// must not be mutated after the event is recorded.
type AuditEvent struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Parameters map[string]string `json:"parameters"`
	OccurredAt time.Time         `json:"occurred_at"`
}
