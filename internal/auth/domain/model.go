package domain

import "time"

// User is an account that owns projects. Users are created by the
// admin CLI; the API only authenticates them.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateUserRequest represents data needed to create a new user
type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
