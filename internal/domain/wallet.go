package domain

import (
	"time"

	"github.com/google/uuid"
)

const CategoryDeposit = "Deposit"

var ExpenseCategories = []string{"Groceries", "Taxi", "Electronics", "Restaurant", "Other"}

type Wallet struct {
	Balance     float64
	CachedRate  float64
	LastUpdated time.Time
}

type Transaction struct {
	ID       uuid.UUID
	Amount   float64
	Category string
	Date     time.Time
}

type TransactionDay struct {
	Day          time.Time
	Transactions []Transaction
}
