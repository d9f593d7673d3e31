package domain

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WatchlistStats is the aggregate snapshot returned by the stats endpoint.
type WatchlistStats struct {
	Count           int `json:"count"`
	TotalDuration   int `json:"total_duration"`
	CurrentPosition int `json:"current_position"`
}
