package models

import "time"

// Identity is an account row in the auth identity store. Profiles reference
// identities by id; the password hash never leaves the server.
type Identity struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	CreatedAt    *time.Time `json:"createdAt" db:"created_at"`
}
