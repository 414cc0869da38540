package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"btcwallet/internal/domain"
)

type Ledger interface {
	Wallet(ctx context.Context) (domain.Wallet, error)
	Deposit(ctx context.Context, amount float64) (domain.Transaction, error)
	Spend(ctx context.Context, amount float64, category string) (domain.Transaction, error)
	Transactions(ctx context.Context) ([]domain.Transaction, error)
	TransactionsByDay(ctx context.Context) ([]domain.TransactionDay, error)
	Categories() []string
}

type Handler struct {
	ledger Ledger
}

func NewLedgerHandler(ledger Ledger) *Handler {
	return &Handler{ledger: ledger}
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
