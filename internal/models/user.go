package models

import "time"

// User is a registered account. Email is stored normalized (trimmed, lower-cased)
// and doubles as the login handle.
type User struct {
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
}

// Identity is the subset of a user that travels inside a session token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity returns the token-facing snapshot of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
