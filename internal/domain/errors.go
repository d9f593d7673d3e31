package domain

import "errors"

// Watchlist and catalog validation errors. These are sentinel errors so the
// service layer can translate each kind to an API error code with errors.Is.
var (
	// ErrEmptyWatchlist is returned by operations that require at least one entry.
	ErrEmptyWatchlist = errors.New("watchlist is empty")

	// ErrNotInWatchlist is returned when a referenced movie id is not present.
	ErrNotInWatchlist = errors.New("movie not in watchlist")

	// ErrDuplicateEntry is returned when adding a movie whose id is already present.
	ErrDuplicateEntry = errors.New("movie already in watchlist")

	// ErrInvalidListNumber is returned when a position falls outside [1, length].
	ErrInvalidListNumber = errors.New("invalid list number")

	// ErrInvalidMovieID is returned when a movie id is negative.
	ErrInvalidMovieID = errors.New("invalid movie id")

	// ErrSelfSwap is returned when a swap names the same movie twice.
	ErrSelfSwap = errors.New("cannot swap a movie with itself")

	// ErrInvalidYear is returned when a movie's release year is not after 1900.
	ErrInvalidYear = errors.New("year must be after 1900")

	// ErrInvalidDuration is returned when a movie's duration is not positive.
	ErrInvalidDuration = errors.New("duration must be positive")
)
