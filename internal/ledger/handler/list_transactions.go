package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

type TransactionDayResponse struct {
	Day          time.Time             `json:"day" example:"2025-01-20T00:00:00Z"`
	Transactions []TransactionResponse `json:"transactions"`
}

type ListTransactionDaysResponse struct {
	Days []TransactionDayResponse `json:"days"`
}

// ListTransactions godoc
// @Summary List transactions
// @Description Newest first; group=day groups them by calendar day (UTC)
// @Tags Wallet
// @Produce json
// @Param group query string false "Set to 'day' to group by day"
// @Success 200 {object} ListTransactionsResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /wallet/transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("group") {
	case "":
		h.listFlat(w, r)
	case "day":
		h.listByDay(w, r)
	default:
		writeError(w, http.StatusBadRequest, "group must be empty or 'day'")
	}
}

func (h *Handler) listFlat(w http.ResponseWriter, r *http.Request) {
	txs, err := h.ledger.Transactions(r.Context())
	if err != nil {
		h.listFailed(w, err)
		return
	}

	res := ListTransactionsResponse{Transactions: make([]TransactionResponse, 0, len(txs))}
	for _, tx := range txs {
		res.Transactions = append(res.Transactions, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) listByDay(w http.ResponseWriter, r *http.Request) {
	days, err := h.ledger.TransactionsByDay(r.Context())
	if err != nil {
		h.listFailed(w, err)
		return
	}

	res := ListTransactionDaysResponse{Days: make([]TransactionDayResponse, 0, len(days))}
	for _, d := range days {
		day := TransactionDayResponse{Day: d.Day, Transactions: make([]TransactionResponse, 0, len(d.Transactions))}
		for _, tx := range d.Transactions {
			day.Transactions = append(day.Transactions, toTransactionResponse(tx))
		}
		res.Days = append(res.Days, day)
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) listFailed(w http.ResponseWriter, err error) {
	msg := "ups, couldn't list transactions this time"
	logrus.WithError(err).WithField("handler", "ListTransactions").Error(msg)
	writeError(w, http.StatusInternalServerError, msg)
}
