package models

import "time"

// User is an account stored in the users collection. Name serves as the
// login key. Password is write-only: every read path returns the document
// through Redacted, which strips it.
type User struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Redacted returns a copy of the user with the password field removed.
// This is the single projection rule applied at the repository boundary.
func (u *User) Redacted() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Password = ""
	return &out
}
