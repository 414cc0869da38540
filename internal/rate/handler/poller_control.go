package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const maxIntervalSec = 24 * 60 * 60

type StartPollerRequest struct {
	IntervalSec int `json:"interval_sec" example:"60"`
}

type PollerStateResponse struct {
	State string `json:"state" example:"running"`
}

// StartPoller godoc
// @Summary Start rate polling
// @Description Starts the polling loop; a no-op when it is already running
// @Tags Rate
// @Accept json
// @Produce json
// @Param request body StartPollerRequest true "Polling interval"
// @Success 202 {object} PollerStateResponse
// @Failure 400 {object} errorResponse
// @Router /rate/poller/start [post]
func (h *Handler) StartPoller(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req StartPollerRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IntervalSec <= 0 || req.IntervalSec > maxIntervalSec {
		writeError(w, http.StatusBadRequest, "interval_sec must be between 1 and 86400")
		return
	}

	if err := h.poller.Start(h.appCtx, time.Duration(req.IntervalSec)*time.Second); err != nil {
		logrus.WithError(err).WithField("handler", "StartPoller").Error("poller wasn't started")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, PollerStateResponse{State: h.poller.State().String()})
}

// StopPoller godoc
// @Summary Stop rate polling
// @Description Stops the polling loop after the in-flight fetch, if any, completes
// @Tags Rate
// @Produce json
// @Success 200 {object} PollerStateResponse
// @Router /rate/poller/stop [post]
func (h *Handler) StopPoller(w http.ResponseWriter, _ *http.Request) {
	h.poller.Stop()
	writeJSON(w, http.StatusOK, PollerStateResponse{State: h.poller.State().String()})
}

// GetPollerState godoc
// @Summary Get poller state
// @Tags Rate
// @Produce json
// @Success 200 {object} PollerStateResponse
// @Router /rate/poller [get]
func (h *Handler) GetPollerState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, PollerStateResponse{State: h.poller.State().String()})
}
