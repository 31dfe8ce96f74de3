package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionTransfer TransactionType = "TRANSFER"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// Delta is the signed balance change amount causes for this type. A transfer
// leaves the account like an expense.
func (t TransactionType) Delta(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionIncome {
		return amount
	}
	return amount.Neg()
}

// Transaction is an immutable movement against one account.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	AccountID   string          `json:"accountId"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description *string         `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TransactionFilter narrows a transaction listing. Empty fields match all.
type TransactionFilter struct {
	UserID    string
	AccountID string
	Type      TransactionType
}

// Category labels transactions. Categories are seeded, not user-created.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Color     string          `json:"color"`
	Icon      string          `json:"icon"`
	IsDefault bool            `json:"isDefault"`
}
