package handler

import (
	"net/http"
	"time"

	"btcwallet/internal/rate"
)

type GetCurrentRateResponse struct {
	Rate       float64   `json:"rate" example:"65000.1234"`
	ObservedAt time.Time `json:"observed_at" example:"2025-01-20T15:04:05Z"`
	AgeSeconds int64     `json:"age_seconds" example:"42"`
	Stale      bool      `json:"stale" example:"false"`
}

// GetCurrentRate godoc
// @Summary Get cached BTC/USD rate
// @Description Last successfully fetched rate together with its freshness
// @Tags Rate
// @Produce json
// @Success 200 {object} GetCurrentRateResponse
// @Failure 404 {object} errorResponse "no rate fetched yet"
// @Router /rate [get]
func (h *Handler) GetCurrentRate(w http.ResponseWriter, _ *http.Request) {
	quote, ok := h.poller.CurrentRate()
	if !ok {
		writeError(w, http.StatusNotFound, "no rate fetched yet")
		return
	}

	f := rate.CheckFreshness(quote, ok, h.clock.Now(), h.maxAge)
	writeJSON(w, http.StatusOK, GetCurrentRateResponse{
		Rate:       quote.Rate,
		ObservedAt: quote.ObservedAt,
		AgeSeconds: int64(f.Age / time.Second),
		Stale:      f.Stale,
	})
}
