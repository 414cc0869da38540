package handler

import (
	"net/http"
	"strings"
	"time"

	"btcwallet/internal/audit"
)

type EventResponse struct {
	ID         string            `json:"id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
	Name       string            `json:"name" example:"bitcoin_rate_update"`
	Parameters map[string]string `json:"parameters"`
	OccurredAt time.Time         `json:"occurred_at" example:"2025-01-20T15:04:05Z"`
}

type GetEventsResponse struct {
	Events []EventResponse `json:"events"`
}

// GetEvents godoc
// @Summary Query audit events
// @Description Filters are combined with AND; start and end are inclusive RFC3339 timestamps
// @Tags Audit
// @Produce json
// @Param name query string false "Event name"
// @Param start query string false "Start date (RFC3339)"
// @Param end query string false "End date (RFC3339)"
// @Success 200 {object} GetEventsResponse
// @Failure 400 {object} errorResponse
// @Router /events [get]
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := audit.Filter{Name: strings.TrimSpace(q.Get("name"))}

	var err error
	if filter.Start, err = parseTime(q.Get("start")); err != nil {
		writeError(w, http.StatusBadRequest, "start must be an RFC3339 timestamp")
		return
	}
	if filter.End, err = parseTime(q.Get("end")); err != nil {
		writeError(w, http.StatusBadRequest, "end must be an RFC3339 timestamp")
		return
	}
	if !filter.Start.IsZero() && !filter.End.IsZero() && filter.End.Before(filter.Start) {
		writeError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	events := h.events.Query(filter)
	res := GetEventsResponse{Events: make([]EventResponse, 0, len(events))}
	for _, e := range events {
		res.Events = append(res.Events, EventResponse{
			ID:         e.ID.String(),
			Name:       e.Name,
			Parameters: e.Parameters,
			OccurredAt: e.OccurredAt,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}
