package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"btcwallet/internal/audit"
	"btcwallet/internal/domain"
	"btcwallet/internal/rate"

	"github.com/jonboulle/clockwork"
)

type Poller interface {
	Start(ctx context.Context, interval time.Duration) error
	Stop()
	CurrentRate() (domain.RateQuote, bool)
	State() rate.PollerState
}

type EventQuerier interface {
	Query(filter audit.Filter) []domain.AuditEvent
}

type Handler struct {
	// loops started over HTTP must outlive the request, so they run on the app context
	appCtx context.Context
	poller Poller
	events EventQuerier
	maxAge time.Duration
	clock  clockwork.Clock
}

func NewRateHandler(appCtx context.Context, poller Poller, events EventQuerier, maxAge time.Duration, clock clockwork.Clock) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handler{appCtx: appCtx, poller: poller, events: events, maxAge: maxAge, clock: clock}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
