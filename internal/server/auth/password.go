package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the account does not exist so that a
// failed login costs the same bcrypt work either way.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("duoledger-timing-equaliser"), common.PasswordHashCost)
	if err != nil {
		panic(err)
	}
	return h
})

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// HashPassword returns the bcrypt hash of password. Passwords longer than
// MaxPasswordBytes are an input error.
func HashPassword(password string) (string, error) {
	b := []byte(password)
	defer common.WipeByteArray(b)

	h, err := bcrypt.GenerateFromPassword(b, common.PasswordHashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than %d bytes", common.ErrorValidation, MaxPasswordBytes)
	}
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePassword reports whether password matches hash. A malformed hash is
// an error; a mismatch is not.
func ComparePassword(hash, password string) (bool, error) {
	b := []byte(password)
	defer common.WipeByteArray(b)

	err := bcrypt.CompareHashAndPassword([]byte(hash), b)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// SpendComparison runs a comparison against a fixed hash and discards the
// result.
func SpendComparison(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
}
