package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reelist/backend/internal/auth"
	"github.com/reelist/backend/internal/domain"
	"github.com/reelist/backend/internal/event"
	"github.com/reelist/backend/internal/omdb"
	"github.com/reelist/backend/internal/service"
	"github.com/reelist/backend/pkg/health"
	pkgkafka "github.com/reelist/backend/pkg/kafka"
	"github.com/reelist/backend/pkg/middleware"
)

// ============================================================================
// Mocks
// ============================================================================

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

// ============================================================================
// Test helpers
// ============================================================================

const testJWTSecret = "test-secret-key-for-tests-only"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

type testFixture struct {
	movieRepo *mockMovieRepository
	userRepo  *mockUserRepository
	metadata  *mockMetadataClient
	ratings   *mockRatingCache
	jwt       *auth.JWTManager
	router    http.Handler
}

// newTestFixture wires the full production router on top of mocked
// repositories and external clients.
func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		movieRepo: new(mockMovieRepository),
		userRepo:  new(mockUserRepository),
		metadata:  new(mockMetadataClient),
		ratings:   new(mockRatingCache),
		jwt:       auth.NewJWTManager(testJWTSecret, 15*time.Minute),
	}

	logger := testLogger()
	producer := testEventProducer()

	catalog := service.NewCatalogService(f.movieRepo, f.metadata, f.ratings, producer, logger)
	watchlist := service.NewWatchlistService(f.movieRepo, catalog, logger)
	users := service.NewUserService(f.userRepo, f.jwt, producer, logger)

	f.router = NewRouter(users, catalog, watchlist, f.jwt,
		health.NewHandler(), logger,
		middleware.DefaultCORSConfig())

	return f
}

// authToken issues a valid bearer token for the fixture's signing key.
func (f *testFixture) authToken(t *testing.T) string {
	t.Helper()
	token, err := f.jwt.GenerateAccessToken("user-123", "alex@example.com")
	require.NoError(t, err)
	return token
}

// do runs a request through the router, optionally with a bearer token.
func (f *testFixture) do(t *testing.T, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// decodeResponse reads the response body into the standard response envelope.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func sampleMovie(id int64, title string) *domain.Movie {
	now := time.Now().UTC()
	return &domain.Movie{
		ID:        id,
		Director:  "Sidney Lumet",
		Title:     title,
		Genre:     "Drama",
		Year:      1957,
		Duration:  96,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
