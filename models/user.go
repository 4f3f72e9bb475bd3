package models

import "time"

// User is an operator account of the coordinator API. Accounts exist to gate
// the HTTP surface; they carry no domain data of their own.
type User struct {
	// UserID is the internal unique identifier of the account.
	// Used only at the persistence layer, never exposed via JSON.
	UserID int64 `json:"-"`

	// Login is the unique account login.
	Login string `json:"login"`

	// AuthHash is the HMAC-hashed authentication secret. Plaintext secrets
	// never reach the persistence layer.
	AuthHash string `json:"authHash,omitempty"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
