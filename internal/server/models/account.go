package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking   AccountType = "CHECKING"
	AccountSavings    AccountType = "SAVINGS"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountInvestment AccountType = "INVESTMENT"
	AccountCash       AccountType = "CASH"
	AccountOther      AccountType = "OTHER"
)

// AccountTypes lists every accepted account type.
var AccountTypes = []AccountType{
	AccountChecking, AccountSavings, AccountCreditCard,
	AccountInvestment, AccountCash, AccountOther,
}

func (t AccountType) Valid() bool {
	for _, v := range AccountTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Account is a balance-holding ledger inside a household. Balance only moves
// through recorded transactions after creation.
type Account struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	HouseholdID string          `json:"householdId"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
