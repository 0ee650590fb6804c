// Package model defines the data structures used throughout the application.
package model

// User represents a registered account.
//
// Identity is local username/password — there is no external identity
// provider. The username is the unique key, and the stored value is
// always a bcrypt hash, never the plaintext password. Accounts are
// created by registration and never updated or deleted afterwards.
//
// WHY NO ID FIELD?
// The credential store is a flat mapping of username → hash, so the
// username IS the primary key. Adding a synthetic ID would just be a
// second name for the same row.
type User struct {
	Username     string
	PasswordHash string // bcrypt output, salt included
}
