// Package auth holds the credential and session primitives of the server:
// bcrypt password hashing and the codecs that turn a user id into the opaque
// session token carried by the cookie and back.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords with bcrypt. The salt and cost
// are embedded in every hash it produces.
type BcryptHasher struct {
	cost      int
	dummyHash []byte
}

// NewBcryptHasher returns a hasher using the given cost. It precomputes a hash
// of a throwaway value so Compare-against-nothing costs the same as a real check.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("txledger-dummy-password"), cost)
	if err != nil {
		return nil, err
	}
	return &BcryptHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash derives a salted bcrypt hash of password. Passwords longer than 72
// bytes are rejected with bcrypt.ErrPasswordTooLong.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether password matches hash.
func (h *BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CompareDummy burns the same CPU time as Compare and always reports false.
// It is used when the user does not exist.
func (h *BcryptHasher) CompareDummy(password string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
	return false
}
