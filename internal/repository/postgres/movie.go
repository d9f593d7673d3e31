package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/reelist/backend/internal/domain"
	"github.com/reelist/backend/pkg/database"
	apperrors "github.com/reelist/backend/pkg/errors"
)

// MovieRepository implements repository.MovieRepository using PostgreSQL.
type MovieRepository struct {
	db database.DBTX
}

// NewMovieRepository creates a new PostgreSQL-backed movie repository.
func NewMovieRepository(db database.DBTX) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, external_ref, director, title, genre, year, duration, watch_count, created_at, updated_at`

// Create inserts a new movie and assigns its generated id.
func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO movies (external_ref, director, title, genre, year, duration, watch_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		m.ExternalRef,
		m.Director,
		m.Title,
		m.Genre,
		m.Year,
		m.Duration,
		m.WatchCount,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("movie", "director/title/year",
				fmt.Sprintf("%s/%s/%d", m.Director, m.Title, m.Year))
		}
		return fmt.Errorf("insert movie: %w", err)
	}

	return nil
}

// GetByID retrieves a non-deleted movie by its id.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE id = $1 AND deleted = false`

	return r.scanMovie(ctx, query, id)
}

// GetByCompoundKey retrieves a non-deleted movie by (director, title, year).
func (r *MovieRepository) GetByCompoundKey(ctx context.Context, key domain.CompoundKey) (*domain.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE director = $1 AND title = $2 AND year = $3 AND deleted = false`

	return r.scanMovie(ctx, query, key.Director, key.Title, key.Year)
}

// List returns all non-deleted movies.
func (r *MovieRepository) List(ctx context.Context, byWatchCount bool) ([]domain.Movie, error) {
	order := "id"
	if byWatchCount {
		order = "watch_count DESC, id"
	}

	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE deleted = false
		ORDER BY ` + order

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(
			&m.ID,
			&m.ExternalRef,
			&m.Director,
			&m.Title,
			&m.Genre,
			&m.Year,
			&m.Duration,
			&m.WatchCount,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	if movies == nil {
		movies = []domain.Movie{}
	}

	return movies, nil
}

// SoftDelete marks a movie as deleted without removing its row.
func (r *MovieRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE movies SET deleted = true, updated_at = $1 WHERE id = $2 AND deleted = false`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("soft delete movie: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("movie", fmt.Sprintf("%d", id))
	}

	return nil
}

// IncrementWatchCount bumps the watch counter for a movie.
func (r *MovieRepository) IncrementWatchCount(ctx context.Context, id int64) error {
	query := `UPDATE movies SET watch_count = watch_count + 1, updated_at = $1 WHERE id = $2 AND deleted = false`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("increment watch count: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("movie", fmt.Sprintf("%d", id))
	}

	return nil
}

// scanMovie executes a query expected to return a single movie row.
func (r *MovieRepository) scanMovie(ctx context.Context, query string, args ...any) (*domain.Movie, error) {
	var m domain.Movie

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&m.ID,
		&m.ExternalRef,
		&m.Director,
		&m.Title,
		&m.Genre,
		&m.Year,
		&m.Duration,
		&m.WatchCount,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan movie: %w", err)
	}

	return &m, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
