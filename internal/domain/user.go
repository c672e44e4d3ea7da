package domain

import "time"

// User is an API account that can obtain JWT bearer tokens via /auth/login.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
