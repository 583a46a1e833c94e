// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user. PasswordHash is a bcrypt hash; the plaintext
// secret never reaches this struct.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
