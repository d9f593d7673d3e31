package domain

import (
	"fmt"
	"time"
)

// Movie represents a catalog record. Once resolved by the catalog it is
// treated as an immutable value inside the watchlist.
type Movie struct {
	ID          int64     `json:"id"`
	ExternalRef string    `json:"external_ref,omitempty"`
	Director    string    `json:"director"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Year        int       `json:"year"`
	Duration    int       `json:"duration"`
	WatchCount  int       `json:"watch_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewMovie constructs a validated Movie. Year and duration invariants are
// enforced here so an invalid record can never reach the watchlist.
func NewMovie(director, title, genre string, year, duration int) (*Movie, error) {
	if director == "" {
		return nil, fmt.Errorf("director must not be empty")
	}
	if title == "" {
		return nil, fmt.Errorf("title must not be empty")
	}
	if year <= 1900 {
		return nil, ErrInvalidYear
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Movie{
		Director: director,
		Title:    title,
		Genre:    genre,
		Year:     year,
		Duration: duration,
	}, nil
}

// ValidateID checks that a movie id is usable as a catalog key.
func ValidateID(id int64) error {
	if id < 0 {
		return ErrInvalidMovieID
	}
	return nil
}

// CompoundKey identifies a movie when no numeric id is available.
type CompoundKey struct {
	Director string `json:"director"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
}

func (k CompoundKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.Director, k.Title, k.Year)
}
