package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned on any login failure so callers never
// learn whether the account or the password was wrong.
var ErrBadCredentials = errors.New("security: bad credentials")

// AdminCredential holds the bcrypt hash of the single admin password.
// The plaintext from the environment is hashed once at startup and
// discarded.
type AdminCredential struct {
	hash []byte
}

func NewAdminCredential(password string, cost int) (*AdminCredential, error) {
	if password == "" {
		return nil, errors.New("security: admin password is empty")
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}
	return &AdminCredential{hash: hash}, nil
}

func (c *AdminCredential) Verify(password string) error {
	if c == nil || len(c.hash) == 0 {
		return ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}
