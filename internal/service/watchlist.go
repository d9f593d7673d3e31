package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/reelist/backend/internal/domain"
	"github.com/reelist/backend/internal/repository"
	apperrors "github.com/reelist/backend/pkg/errors"
)

// WatchlistService implements the ordered watchlist on top of the catalog.
// The watchlist itself is in-memory; movies are resolved from the catalog
// when added so entries carry full records. A single mutex guards the list
// since every operation touches the shared ordering.
type WatchlistService struct {
	mu        sync.Mutex
	watchlist *domain.Watchlist
	movieRepo repository.MovieRepository
	catalog   *CatalogService
	logger    *slog.Logger
}

// NewWatchlistService creates a new watchlist service backed by the catalog.
func NewWatchlistService(movieRepo repository.MovieRepository, catalog *CatalogService, logger *slog.Logger) *WatchlistService {
	return &WatchlistService{
		watchlist: domain.NewWatchlist(),
		movieRepo: movieRepo,
		catalog:   catalog,
		logger:    logger,
	}
}

// Add resolves a movie from the catalog by id and appends it to the watchlist.
func (s *WatchlistService) Add(ctx context.Context, id int64) (*domain.Movie, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, translateDomainError(err)
	}

	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("movie", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("resolve movie for watchlist: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.Add(*movie); err != nil {
		return nil, translateDomainError(err)
	}

	s.logger.InfoContext(ctx, "movie added to watchlist",
		slog.Int64("movie_id", movie.ID),
		slog.Int("position", s.watchlist.Len()),
	)

	return movie, nil
}

// AddByCompoundKey resolves a movie by (director, title, year) and appends it.
func (s *WatchlistService) AddByCompoundKey(ctx context.Context, key domain.CompoundKey) (*domain.Movie, error) {
	movie, err := s.catalog.GetMovieByCompoundKey(ctx, key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.Add(*movie); err != nil {
		return nil, translateDomainError(err)
	}

	s.logger.InfoContext(ctx, "movie added to watchlist",
		slog.Int64("movie_id", movie.ID),
		slog.Int("position", s.watchlist.Len()),
	)

	return movie, nil
}

// All returns the watchlist entries in order.
func (s *WatchlistService) All(ctx context.Context) ([]domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.watchlist.All()
	if err != nil {
		return nil, translateDomainError(err)
	}

	return entries, nil
}

// Get returns the watchlist entry with the given movie id.
func (s *WatchlistService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, translateDomainError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	movie, err := s.watchlist.ByID(id)
	if err != nil {
		return nil, translateDomainError(err)
	}

	return &movie, nil
}

// GetByListNumber returns the entry at the given 1-indexed position.
func (s *WatchlistService) GetByListNumber(ctx context.Context, n int) (*domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	movie, err := s.watchlist.ByListNumber(n)
	if err != nil {
		return nil, translateDomainError(err)
	}

	return &movie, nil
}

// Remove deletes the entry with the given movie id from the watchlist.
func (s *WatchlistService) Remove(ctx context.Context, id int64) error {
	if err := domain.ValidateID(id); err != nil {
		return translateDomainError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.RemoveByID(id); err != nil {
		return translateDomainError(err)
	}

	s.logger.InfoContext(ctx, "movie removed from watchlist",
		slog.Int64("movie_id", id),
	)

	return nil
}

// RemoveByListNumber deletes the entry at the given 1-indexed position.
func (s *WatchlistService) RemoveByListNumber(ctx context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.RemoveByListNumber(n); err != nil {
		return translateDomainError(err)
	}

	s.logger.InfoContext(ctx, "movie removed from watchlist",
		slog.Int("list_number", n),
	)

	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *WatchlistService) Clear(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.watchlist.Clear()
	if removed == 0 {
		s.logger.WarnContext(ctx, "clear requested on empty watchlist")
		return 0
	}

	s.logger.InfoContext(ctx, "watchlist cleared",
		slog.Int("removed", removed),
	)

	return removed
}

// Stats returns the aggregate watchlist snapshot.
func (s *WatchlistService) Stats(ctx context.Context) domain.WatchlistStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.WatchlistStats{
		Count:           s.watchlist.Len(),
		TotalDuration:   s.watchlist.TotalDuration(),
		CurrentPosition: s.watchlist.CurrentPosition(),
	}
}

// Current returns the entry at the cursor position.
func (s *WatchlistService) Current(ctx context.Context) (*domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	movie, err := s.watchlist.Current()
	if err != nil {
		return nil, translateDomainError(err)
	}

	return &movie, nil
}

// GoTo moves the cursor to the given 1-indexed position.
func (s *WatchlistService) GoTo(ctx context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.GoTo(n); err != nil {
		return translateDomainError(err)
	}

	return nil
}

// WatchCurrent marks the entry at the cursor as watched, bumping its catalog
// watch counter. The cursor stays where it is.
func (s *WatchlistService) WatchCurrent(ctx context.Context) (*domain.Movie, error) {
	s.mu.Lock()
	current, err := s.watchlist.Current()
	s.mu.Unlock()
	if err != nil {
		return nil, translateDomainError(err)
	}

	movie, err := s.catalog.MarkWatched(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "current movie watched",
		slog.Int64("movie_id", movie.ID),
		slog.Int("watch_count", movie.WatchCount),
	)

	return movie, nil
}

// MoveToBeginning moves the entry with the given id to position 1.
func (s *WatchlistService) MoveToBeginning(ctx context.Context, id int64) error {
	if err := domain.ValidateID(id); err != nil {
		return translateDomainError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.MoveToBeginning(id); err != nil {
		return translateDomainError(err)
	}

	return nil
}

// MoveToEnd moves the entry with the given id to the last position.
func (s *WatchlistService) MoveToEnd(ctx context.Context, id int64) error {
	if err := domain.ValidateID(id); err != nil {
		return translateDomainError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.MoveToEnd(id); err != nil {
		return translateDomainError(err)
	}

	return nil
}

// MoveToListNumber moves the entry with the given id to the 1-indexed position n.
func (s *WatchlistService) MoveToListNumber(ctx context.Context, id int64, n int) error {
	if err := domain.ValidateID(id); err != nil {
		return translateDomainError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.MoveToListNumber(id, n); err != nil {
		return translateDomainError(err)
	}

	s.logger.InfoContext(ctx, "watchlist entry moved",
		slog.Int64("movie_id", id),
		slog.Int("list_number", n),
	)

	return nil
}

// Swap exchanges the positions of two entries identified by movie id.
func (s *WatchlistService) Swap(ctx context.Context, id1, id2 int64) error {
	if err := domain.ValidateID(id1); err != nil {
		return translateDomainError(err)
	}
	if err := domain.ValidateID(id2); err != nil {
		return translateDomainError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.watchlist.Swap(id1, id2); err != nil {
		return translateDomainError(err)
	}

	s.logger.InfoContext(ctx, "watchlist entries swapped",
		slog.Int64("movie_id_1", id1),
		slog.Int64("movie_id_2", id2),
	)

	return nil
}
