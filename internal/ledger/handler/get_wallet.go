package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type GetWalletResponse struct {
	Balance     float64   `json:"balance" example:"0.5"`
	CachedRate  float64   `json:"cached_rate" example:"65000.1234"`
	BalanceUSD  float64   `json:"balance_usd" example:"32500.0617"`
	LastUpdated time.Time `json:"last_updated" example:"2025-01-20T15:04:05Z"`
}

// GetWallet godoc
// @Summary Get wallet
// @Description Balance in BTC, the last cached BTC/USD rate and when it was stored
// @Tags Wallet
// @Produce json
// @Success 200 {object} GetWalletResponse
// @Failure 500 {object} errorResponse
// @Router /wallet [get]
func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.ledger.Wallet(r.Context())
	if err != nil {
		msg := "ups, couldn't load wallet this time"
		logrus.WithError(err).WithField("handler", "GetWallet").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetWalletResponse{
		Balance:     wallet.Balance,
		CachedRate:  wallet.CachedRate,
		BalanceUSD:  wallet.Balance * wallet.CachedRate,
		LastUpdated: wallet.LastUpdated,
	})
}
