package identity

import "time"

// User represents a registered wallet owner.
type User struct {
	ID           string
	Username     string
	Email        string
	Name         string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
}

// RegisterInput captures the data required to onboard a user.
type RegisterInput struct {
	Username string
	Email    string
	Name     string
	Password string
}
