package handler

import "net/http"

type GetCategoriesResponse struct {
	Categories []string `json:"categories" example:"Electronics,Groceries,Other,Restaurant,Taxi"`
}

// GetCategories godoc
// @Summary List expense categories
// @Description Categories accepted by POST /wallet/expenses
// @Tags Wallet
// @Produce json
// @Success 200 {object} GetCategoriesResponse
// @Router /wallet/categories [get]
func (h *Handler) GetCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GetCategoriesResponse{Categories: h.ledger.Categories()})
}
