package model

import "time"

// User represents an account record as stored in the `users` table.
// The core booking flow only ever sees the ID; the remaining fields
// belong to the account boundary (signup/login).
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password, never the plaintext.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
