package repository

import (
	"context"

	"github.com/reelist/backend/internal/domain"
)

// MovieRepository defines the interface for catalog persistence operations.
// Deleted movies are soft-deleted: they stay in the store but are excluded
// from lookups and listings.
type MovieRepository interface {
	// Create inserts a new movie and assigns its id.
	Create(ctx context.Context, movie *domain.Movie) error

	// GetByID retrieves a non-deleted movie by its id.
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)

	// GetByCompoundKey retrieves a non-deleted movie by (director, title, year).
	GetByCompoundKey(ctx context.Context, key domain.CompoundKey) (*domain.Movie, error)

	// List returns all non-deleted movies. When byWatchCount is true the
	// result is ordered by watch_count descending, otherwise by id.
	List(ctx context.Context, byWatchCount bool) ([]domain.Movie, error)

	// SoftDelete marks a movie as deleted without removing its row.
	SoftDelete(ctx context.Context, id int64) error

	// IncrementWatchCount bumps the watch counter for a movie.
	IncrementWatchCount(ctx context.Context, id int64) error
}

// UserRepository defines the interface for account persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
