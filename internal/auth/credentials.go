// Package auth — credential verification.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mhasan/show-catalog/internal/apperror"
)

// CredentialVerifier checks an identity claim against stored credentials and
// returns the identity it resolves to.
//
// The login flow only depends on this interface, so the single configured
// account below can be swapped for a real credential store (users table,
// LDAP, whatever) without touching token issuance or the handler.
type CredentialVerifier interface {
	// Verify returns the user ID for the identity, or an error wrapping
	// apperror.ErrUnauthorized when the credentials don't match.
	Verify(email, password string) (int64, error)
}

// StaticCredentials verifies against a single configured email/password
// pair. The password is bcrypt-hashed once at construction, so the plaintext
// doesn't hang around in memory for the life of the process and every login
// goes through the same constant-time comparison a real store would use.
type StaticCredentials struct {
	email        string
	passwordHash []byte
	userID       int64
}

// bcrypt work factor for the startup hash. Modest on purpose: this hash is
// recomputed on every process start, and the account behind it is a
// configured service credential, not a user database.
const staticCredentialCost = 10

// NewStaticCredentials builds a verifier for one account. userID is the
// identity asserted in issued tokens for this account.
func NewStaticCredentials(email, password string, userID int64) (*StaticCredentials, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("auth: static credentials require both email and password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), staticCredentialCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hashing configured password: %w", err)
	}

	return &StaticCredentials{
		email:        email,
		passwordHash: hash,
		userID:       userID,
	}, nil
}

// Verify implements CredentialVerifier.
//
// Both the wrong-email and wrong-password paths return the same error, so a
// caller can't probe which half was wrong. bcrypt.CompareHashAndPassword is
// constant-time internally.
func (c *StaticCredentials) Verify(email, password string) (int64, error) {
	if email != c.email {
		return 0, apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return 0, apperror.Unauthorized("Invalid email or password")
	}
	return c.userID, nil
}
