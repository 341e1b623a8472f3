package users

import "time"

// User is one entry of the directory of people who have logged in.
type User struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Provider    string    `json:"provider"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)
