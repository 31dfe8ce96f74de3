package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountType_Valid(t *testing.T) {
	for _, at := range AccountTypes {
		assert.True(t, at.Valid(), at)
	}
	assert.False(t, AccountType("checking").Valid())
	assert.False(t, AccountType("").Valid())
}

func TestTransactionType_Delta(t *testing.T) {
	amt := decimal.RequireFromString("40.00")

	assert.True(t, TransactionIncome.Delta(amt).Equal(amt))
	assert.True(t, TransactionExpense.Delta(amt).Equal(amt.Neg()))
	assert.True(t, TransactionTransfer.Delta(amt).Equal(amt.Neg()))
	assert.False(t, TransactionType("REFUND").Valid())
}

func TestUser_JSONHidesSecrets(t *testing.T) {
	tok := "abc"
	exp := time.Now()
	u := User{
		ID: "u1", Email: "a@x.io", PasswordHash: "$2a$12$hash", Name: "Ann",
		VerificationToken: &tok, VerificationExpires: &exp,
	}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	s := string(b)
	assert.NotContains(t, s, "hash")
	assert.NotContains(t, s, "abc")
	assert.Contains(t, s, `"emailVerified":false`)
	assert.Contains(t, s, `"householdId":null`)
}
