// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered person. PasswordHash and the verification fields
// never leave the server.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Name                string     `json:"name"`
	EmailVerified       bool       `json:"emailVerified"`
	VerificationToken   *string    `json:"-"`
	VerificationExpires *time.Time `json:"-"`
	HouseholdID         *string    `json:"householdId"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// Household groups the users sharing a ledger. OwnerID is unique: a user
// owns at most one household.
type Household struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
