package models

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique login name.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// IsAdmin marks the bootstrap administrator account.
	IsAdmin bool

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
