package domain

import "time"

// User models a registered account. SecretHash is write-only: it never
// appears in serialized reads and only the authenticate path compares it.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	SecretHash string    `json:"secret_hash,omitempty"`
	Role       string    `json:"role"`
	Bio        string    `json:"bio,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Clone returns a copy safe to hand outside the store.
func (u *User) Clone() *User {
	c := *u
	return &c
}

// Redacted returns a copy with the credential stripped, for read responses.
func (u *User) Redacted() *User {
	c := *u
	c.SecretHash = ""
	return &c
}
