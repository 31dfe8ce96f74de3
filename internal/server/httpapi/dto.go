package httpapi

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/duoledger/internal/server/auth"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"
)

const passwordSymbols = "@$!%*?&."

// strongPassword requires a lower-case letter, an upper-case letter, a
// digit and one of passwordSymbols.
func strongPassword(value interface{}) error {
	s, _ := value.(string)
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return errors.New("must contain lower and upper case letters, a digit and one of " + passwordSymbols)
	}
	return nil
}

// fitsBcrypt limits the password to what bcrypt hashes, counted in bytes
// rather than runes.
func fitsBcrypt(value interface{}) error {
	s, _ := value.(string)
	if len(s) > auth.MaxPasswordBytes {
		return fmt.Errorf("must be at most %d bytes", auth.MaxPasswordBytes)
	}
	return nil
}

func positive(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if !d.IsPositive() {
		return errors.New("must be positive")
	}
	return nil
}

func accountTypes() []interface{} {
	out := make([]interface{}, 0, len(models.AccountTypes))
	for _, t := range models.AccountTypes {
		out = append(out, string(t))
	}
	return out
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 0), validation.By(fitsBcrypt), validation.By(strongPassword)),
		validation.Field(&r.ConfirmPassword, validation.By(func(value interface{}) error {
			if s, _ := value.(string); s != "" && s != r.Password {
				return errors.New("passwords do not match")
			}
			return nil
		})),
		validation.Field(&r.Name, validation.Required, validation.Length(2, 0)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
	)
}

type householdRequest struct {
	Name string `json:"name"`
}

func (r householdRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

type accountRequest struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

func (r accountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Type, validation.Required, validation.In(accountTypes()...)),
	)
}

type transactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CategoryID  string          `json:"categoryId"`
	AccountID   string          `json:"accountId"`
	Description *string         `json:"description"`
	Date        *time.Time      `json:"date"`
}

func (r transactionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.By(positive)),
		validation.Field(&r.Type, validation.Required, validation.In(
			string(models.TransactionIncome), string(models.TransactionExpense), string(models.TransactionTransfer))),
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.AccountID, validation.Required),
	)
}
