// Package cryptox wraps the password hashing primitive used for stored
// credentials. Hashes are bcrypt: salted, slow, and verified in constant time.
package cryptox

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the work factor the service has always used.
const DefaultCost = 10

// HashPassword returns the bcrypt hash of password. Passwords longer than
// bcrypt's input limit are rejected instead of silently truncated.
func HashPassword(password string, cost int) (string, error) {
	if len(password) > common.MaxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", common.ErrValidation, common.MaxPasswordBytes)
	}
	if cost == 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. A mismatch is not an
// error; a malformed hash is.
func CheckPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
