// Package cryptox wraps password hashing for admin credentials.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the admin setup tooling has always used.
// Changing it only affects newly stored hashes.
const bcryptCost = 10

// ErrMismatch reports that a password does not verify against its hash.
var ErrMismatch = errors.New("cryptox: password does not match")

// HashPassword returns a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

// dummyHash is a valid bcrypt hash of an unguessable throwaway value.
var dummyHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("loandesk-timing-equalizer"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// BurnVerification performs a bcrypt comparison against a throwaway hash so
// that lookup misses cost the same as a real password check. It always
// reports a mismatch.
func BurnVerification(password string) error {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
	return ErrMismatch
}
