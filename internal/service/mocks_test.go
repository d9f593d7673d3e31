package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/reelist/backend/internal/domain"
	"github.com/reelist/backend/internal/event"
	"github.com/reelist/backend/internal/omdb"
	pkgkafka "github.com/reelist/backend/pkg/kafka"
)

// --- Mock Repositories ---

type mockMovieRepository struct {
	mock.Mock
}

func (m *mockMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *mockMovieRepository) GetByCompoundKey(ctx context.Context, key domain.CompoundKey) (*domain.Movie, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *mockMovieRepository) List(ctx context.Context, byWatchCount bool) ([]domain.Movie, error) {
	args := m.Called(ctx, byWatchCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *mockMovieRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMovieRepository) IncrementWatchCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// --- Mock External Dependencies ---

type mockMetadataClient struct {
	mock.Mock
}

func (m *mockMetadataClient) GetByTitle(ctx context.Context, title string) (*omdb.TitleData, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*omdb.TitleData), args.Error(1)
}

func (m *mockMetadataClient) GetRating(ctx context.Context, imdbID string) (float64, error) {
	args := m.Called(ctx, imdbID)
	return args.Get(0).(float64), args.Error(1)
}

type mockRatingCache struct {
	mock.Mock
}

func (m *mockRatingCache) Get(ctx context.Context, imdbID string) (float64, bool, error) {
	args := m.Called(ctx, imdbID)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *mockRatingCache) Set(ctx context.Context, imdbID string, rating float64) error {
	args := m.Called(ctx, imdbID, rating)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer creates an event producer that will fail silently in
// tests (no real broker).
func newTestProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func newTestCatalog(repo *mockMovieRepository, metadata *mockMetadataClient, ratings *mockRatingCache) *CatalogService {
	return NewCatalogService(repo, metadata, ratings, newTestProducer(), newTestLogger())
}

func newCatalogMovie(id int64, title string, duration int) *domain.Movie {
	now := time.Now().UTC()
	return &domain.Movie{
		ID:        id,
		Director:  "Sidney Lumet",
		Title:     title,
		Genre:     "Drama",
		Year:      1957,
		Duration:  duration,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
