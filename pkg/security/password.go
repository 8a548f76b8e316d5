package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("passphrase hashing failed")
	ErrMismatch      = errors.New("passphrase does not match")
	MinPassphraseLen = 8
)

// PasswordHasher provides interface for passphrase operations
type PasswordHasher interface {
	Hash(passphrase string) (string, error)
	Compare(hashed, passphrase string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new hasher using bcrypt
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(passphrase string) (string, error) {
	if len(passphrase) < MinPassphraseLen {
		return "", errors.New("passphrase too short")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(passphrase), b.cost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(bytes), nil
}

func (b *bcryptHasher) Compare(hashed, passphrase string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(passphrase)); err != nil {
		return ErrMismatch
	}
	return nil
}
