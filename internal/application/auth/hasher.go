package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher deriva y verifica hashes one-way con sal.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare devuelve nil si password corresponde a hash.
	Compare(hash, password string) error
}

// BcryptHasher implementación con bcrypt (la sal va embebida en el hash).
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. cost fuera de rango usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
