package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/reelist/backend/internal/domain"
	"github.com/reelist/backend/internal/event"
	"github.com/reelist/backend/internal/omdb"
	"github.com/reelist/backend/internal/repository"
	apperrors "github.com/reelist/backend/pkg/errors"
)

// MetadataClient fetches movie metadata from the external movie database.
type MetadataClient interface {
	GetByTitle(ctx context.Context, title string) (*omdb.TitleData, error)
	GetRating(ctx context.Context, imdbID string) (float64, error)
}

// RatingCache caches ratings fetched from the external movie database.
type RatingCache interface {
	Get(ctx context.Context, imdbID string) (float64, bool, error)
	Set(ctx context.Context, imdbID string, rating float64) error
}

// CatalogService implements the business logic for the movie catalog.
type CatalogService struct {
	movieRepo repository.MovieRepository
	metadata  MetadataClient
	ratings   RatingCache
	producer  *event.Producer
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	movieRepo repository.MovieRepository,
	metadata MetadataClient,
	ratings RatingCache,
	producer *event.Producer,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		movieRepo: movieRepo,
		metadata:  metadata,
		ratings:   ratings,
		producer:  producer,
		logger:    logger,
	}
}

// CreateMovieInput holds the parameters for adding a movie to the catalog.
type CreateMovieInput struct {
	Director string
	Title    string
	Genre    string
	Year     int
	Duration int
}

// CreateMovie validates the input, enriches the movie with an external
// reference when the metadata lookup succeeds, and persists it. Enrichment
// failures are logged and do not fail the creation.
func (s *CatalogService) CreateMovie(ctx context.Context, input CreateMovieInput) (*domain.Movie, error) {
	movie, err := domain.NewMovie(input.Director, input.Title, input.Genre, input.Year, input.Duration)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if title, err := s.metadata.GetByTitle(ctx, movie.Title); err != nil {
		s.logger.WarnContext(ctx, "metadata enrichment skipped",
			slog.String("title", movie.Title),
			slog.String("error", err.Error()),
		)
	} else {
		movie.ExternalRef = title.IMDBID
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	if err := s.producer.PublishMovieCreated(ctx, movie); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish movie.created event",
			slog.Int64("movie_id", movie.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "movie created",
		slog.Int64("movie_id", movie.ID),
		slog.String("title", movie.Title),
	)

	return movie, nil
}

// GetMovie retrieves a movie from the catalog by its id.
func (s *CatalogService) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, translateDomainError(err)
	}

	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("movie", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	return movie, nil
}

// GetMovieByCompoundKey retrieves a movie by its (director, title, year) key.
func (s *CatalogService) GetMovieByCompoundKey(ctx context.Context, key domain.CompoundKey) (*domain.Movie, error) {
	if key.Director == "" || key.Title == "" {
		return nil, apperrors.InvalidInput("director and title are required")
	}

	movie, err := s.movieRepo.GetByCompoundKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("movie", key.String())
		}
		return nil, fmt.Errorf("get movie by compound key: %w", err)
	}

	return movie, nil
}

// ListMovies returns all movies in the catalog. When byWatchCount is true
// the result is ordered by watch count descending.
func (s *CatalogService) ListMovies(ctx context.Context, byWatchCount bool) ([]domain.Movie, error) {
	movies, err := s.movieRepo.List(ctx, byWatchCount)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return movies, nil
}

// DeleteMovie soft-deletes a movie from the catalog.
func (s *CatalogService) DeleteMovie(ctx context.Context, id int64) error {
	if err := domain.ValidateID(id); err != nil {
		return translateDomainError(err)
	}

	if err := s.movieRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	if err := s.producer.PublishMovieDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish movie.deleted event",
			slog.Int64("movie_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "movie deleted",
		slog.Int64("movie_id", id),
	)

	return nil
}

// MarkWatched bumps the watch counter for a movie and returns the updated record.
func (s *CatalogService) MarkWatched(ctx context.Context, id int64) (*domain.Movie, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, translateDomainError(err)
	}

	if err := s.movieRepo.IncrementWatchCount(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("movie", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("increment watch count: %w", err)
	}

	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie after watch: %w", err)
	}

	if err := s.producer.PublishMovieWatched(ctx, id, movie.WatchCount); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish movie.watched event",
			slog.Int64("movie_id", id),
			slog.String("error", err.Error()),
		)
	}

	return movie, nil
}

// Rating returns the external rating for a movie, served from the cache
// when available.
func (s *CatalogService) Rating(ctx context.Context, id int64) (float64, error) {
	movie, err := s.GetMovie(ctx, id)
	if err != nil {
		return 0, err
	}

	if movie.ExternalRef == "" {
		return 0, apperrors.NotFound("rating", strconv.FormatInt(id, 10))
	}

	if rating, ok, err := s.ratings.Get(ctx, movie.ExternalRef); err != nil {
		s.logger.WarnContext(ctx, "rating cache read failed",
			slog.String("imdb_id", movie.ExternalRef),
			slog.String("error", err.Error()),
		)
	} else if ok {
		return rating, nil
	}

	rating, err := s.metadata.GetRating(ctx, movie.ExternalRef)
	if err != nil {
		return 0, fmt.Errorf("fetch rating: %w", err)
	}

	if err := s.ratings.Set(ctx, movie.ExternalRef, rating); err != nil {
		s.logger.WarnContext(ctx, "rating cache write failed",
			slog.String("imdb_id", movie.ExternalRef),
			slog.String("error", err.Error()),
		)
	}

	return rating, nil
}
