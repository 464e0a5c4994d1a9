// Package hash implements the credential-verification collaborator. The core
// never compares secrets directly; it goes through this port so the scheme
// can be swapped without touching store logic.
package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt hashes and verifies secrets with bcrypt.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a hasher using cost, or bcrypt.DefaultCost when
// cost <= 0.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash derives a salted hash of secret.
func (b *Bcrypt) Hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether secret matches hash.
func (b *Bcrypt) Verify(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
