package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"btcwallet/internal/domain"

	"github.com/sirupsen/logrus"
)

type DepositRequest struct {
	Amount float64 `json:"amount" example:"0.5"`
}

type ExpenseRequest struct {
	Amount   float64 `json:"amount" example:"0.01"`
	Category string  `json:"category" example:"Groceries" enums:"Groceries,Taxi,Electronics,Restaurant,Other"`
}

type TransactionResponse struct {
	ID       string    `json:"id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
	Amount   float64   `json:"amount" example:"0.01"`
	Category string    `json:"category" example:"Groceries"`
	Date     time.Time `json:"date" example:"2025-01-20T15:04:05Z"`
}

func toTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{ID: tx.ID.String(), Amount: tx.Amount, Category: tx.Category, Date: tx.Date}
}

// AddDeposit godoc
// @Summary Top up wallet
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body DepositRequest true "Deposit"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /wallet/deposits [post]
func (h *Handler) AddDeposit(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.ledger.Deposit(r.Context(), req.Amount)
	h.respondTransaction(w, "AddDeposit", tx, err)
}

// AddExpense godoc
// @Summary Record an expense
// @Description Subtracts amount from the balance; overdraft is not prevented
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /wallet/expenses [post]
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.ledger.Spend(r.Context(), req.Amount, strings.TrimSpace(req.Category))
	h.respondTransaction(w, "AddExpense", tx, err)
}

func (h *Handler) respondTransaction(w http.ResponseWriter, handler string, tx domain.Transaction, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, domain.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		msg := "failed to record transaction"
		logrus.WithError(err).WithField("handler", handler).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
