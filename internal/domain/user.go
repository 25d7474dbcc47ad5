package domain

import "time"

// User is a registered account. Admins may view cross-user data and mutate
// order/payment status.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	IsAdmin      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
