package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reelist/backend/internal/domain"
	"github.com/reelist/backend/internal/omdb"
	apperrors "github.com/reelist/backend/pkg/errors"
)

func TestCreateMovie_Enriched(t *testing.T) {
	repo := new(mockMovieRepository)
	metadata := new(mockMetadataClient)
	ratings := new(mockRatingCache)
	svc := newTestCatalog(repo, metadata, ratings)
	ctx := context.Background()

	metadata.On("GetByTitle", ctx, "12 Angry Men").
		Return(&omdb.TitleData{Title: "12 Angry Men", IMDBID: "tt0050083"}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Movie")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Movie).ID = 1
		}).
		Return(nil)

	movie, err := svc.CreateMovie(ctx, CreateMovieInput{
		Director: "Sidney Lumet",
		Title:    "12 Angry Men",
		Genre:    "Drama",
		Year:     1957,
		Duration: 96,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), movie.ID)
	assert.Equal(t, "tt0050083", movie.ExternalRef)

	repo.AssertExpectations(t)
	metadata.AssertExpectations(t)
}

func TestCreateMovie_EnrichmentFailureIsNotFatal(t *testing.T) {
	repo := new(mockMovieRepository)
	metadata := new(mockMetadataClient)
	ratings := new(mockRatingCache)
	svc := newTestCatalog(repo, metadata, ratings)
	ctx := context.Background()

	metadata.On("GetByTitle", ctx, "Obscure Film").
		Return(nil, apperrors.Upstream("omdb", "request timed out"))
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Movie")).Return(nil)

	movie, err := svc.CreateMovie(ctx, CreateMovieInput{
		Director: "Someone",
		Title:    "Obscure Film",
		Genre:    "Drama",
		Year:     2001,
		Duration: 100,
	})

	require.NoError(t, err)
	assert.Empty(t, movie.ExternalRef)

	repo.AssertExpectations(t)
}

func TestCreateMovie_InvalidYear(t *testing.T) {
	svc := newTestCatalog(new(mockMovieRepository), new(mockMetadataClient), new(mockRatingCache))

	_, err := svc.CreateMovie(context.Background(), CreateMovieInput{
		Director: "Someone",
		Title:    "Early Film",
		Genre:    "Drama",
		Year:     1880,
		Duration: 100,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateMovie_Duplicate(t *testing.T) {
	repo := new(mockMovieRepository)
	metadata := new(mockMetadataClient)
	svc := newTestCatalog(repo, metadata, new(mockRatingCache))
	ctx := context.Background()

	metadata.On("GetByTitle", ctx, "12 Angry Men").
		Return(&omdb.TitleData{IMDBID: "tt0050083"}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Movie")).
		Return(apperrors.AlreadyExists("movie", "director/title/year", "Sidney Lumet/12 Angry Men/1957"))

	_, err := svc.CreateMovie(ctx, CreateMovieInput{
		Director: "Sidney Lumet",
		Title:    "12 Angry Men",
		Genre:    "Drama",
		Year:     1957,
		Duration: 96,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestGetMovie_Success(t *testing.T) {
	repo := new(mockMovieRepository)
	svc := newTestCatalog(repo, new(mockMetadataClient), new(mockRatingCache))
	ctx := context.Background()

	expected := newCatalogMovie(1, "12 Angry Men", 96)
	repo.On("GetByID", ctx, int64(1)).Return(expected, nil)

	movie, err := svc.GetMovie(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, expected, movie)
}

func TestGetMovie_NotFound(t *testing.T) {
	repo := new(mockMovieRepository)
	svc := newTestCatalog(repo, new(mockMetadataClient), new(mockRatingCache))
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(42)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetMovie(ctx, 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestGetMovie_NegativeID(t *testing.T) {
	svc := newTestCatalog(new(mockMovieRepository), new(mockMetadataClient), new(mockRatingCache))

	_, err := svc.GetMovie(context.Background(), -1)

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_MOVIE_ID", appErr.Code)
}

func TestGetMovieByCompoundKey(t *testing.T) {
	repo := new(mockMovieRepository)
	svc := newTestCatalog(repo, new(mockMetadataClient), new(mockRatingCache))
	ctx := context.Background()

	key := domain.CompoundKey{Director: "Sidney Lumet", Title: "12 Angry Men", Year: 1957}
	expected := newCatalogMovie(1, "12 Angry Men", 96)
	repo.On("GetByCompoundKey", ctx, key).Return(expected, nil)

	movie, err := svc.GetMovieByCompoundKey(ctx, key)

	require.NoError(t, err)
	assert.Equal(t, expected, movie)
}

func TestGetMovieByCompoundKey_MissingFields(t *testing.T) {
	svc := newTestCatalog(new(mockMovieRepository), new(mockMetadataClient), new(mockRatingCache))

	_, err := svc.GetMovieByCompoundKey(context.Background(), domain.CompoundKey{Year: 1957})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListMovies(t *testing.T) {
	repo := new(mockMovieRepository)
	svc := newTestCatalog(repo, new(mockMetadataClient), new(mockRatingCache))
	ctx := context.Background()

	expected := []domain.Movie{*newCatalogMovie(1, "12 Angry Men", 96)}
	repo.On("List", ctx, false).Return(expected, nil)

	movies, err := svc.ListMovies(ctx, false)

	require.NoError(t, err)
	assert.Equal(t, expected, movies)
}

func TestDeleteMovie(t *testing.T) {
	repo := new(mockMovieRepository)
	svc := newTestCatalog(repo, new(mockMetadataClient), new(mockRatingCache))
	ctx := context.Background()

	repo.On("SoftDelete", ctx, int64(1)).Return(nil)

	err := svc.DeleteMovie(ctx, 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkWatched(t *testing.T) {
	repo := new(mockMovieRepository)
	svc := newTestCatalog(repo, new(mockMetadataClient), new(mockRatingCache))
	ctx := context.Background()

	watched := newCatalogMovie(1, "12 Angry Men", 96)
	watched.WatchCount = 3
	repo.On("IncrementWatchCount", ctx, int64(1)).Return(nil)
	repo.On("GetByID", ctx, int64(1)).Return(watched, nil)

	movie, err := svc.MarkWatched(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 3, movie.WatchCount)
	repo.AssertExpectations(t)
}

func TestRating_CacheHit(t *testing.T) {
	repo := new(mockMovieRepository)
	ratings := new(mockRatingCache)
	metadata := new(mockMetadataClient)
	svc := newTestCatalog(repo, metadata, ratings)
	ctx := context.Background()

	movie := newCatalogMovie(1, "12 Angry Men", 96)
	movie.ExternalRef = "tt0050083"
	repo.On("GetByID", ctx, int64(1)).Return(movie, nil)
	ratings.On("Get", ctx, "tt0050083").Return(9.0, true, nil)

	rating, err := svc.Rating(ctx, 1)

	require.NoError(t, err)
	assert.InDelta(t, 9.0, rating, 0.001)
	metadata.AssertNotCalled(t, "GetRating", mock.Anything, mock.Anything)
}

func TestRating_CacheMissFetchesAndStores(t *testing.T) {
	repo := new(mockMovieRepository)
	ratings := new(mockRatingCache)
	metadata := new(mockMetadataClient)
	svc := newTestCatalog(repo, metadata, ratings)
	ctx := context.Background()

	movie := newCatalogMovie(1, "12 Angry Men", 96)
	movie.ExternalRef = "tt0050083"
	repo.On("GetByID", ctx, int64(1)).Return(movie, nil)
	ratings.On("Get", ctx, "tt0050083").Return(0.0, false, nil)
	metadata.On("GetRating", ctx, "tt0050083").Return(9.0, nil)
	ratings.On("Set", ctx, "tt0050083", 9.0).Return(nil)

	rating, err := svc.Rating(ctx, 1)

	require.NoError(t, err)
	assert.InDelta(t, 9.0, rating, 0.001)
	ratings.AssertExpectations(t)
	metadata.AssertExpectations(t)
}

func TestRating_CacheErrorFallsThrough(t *testing.T) {
	repo := new(mockMovieRepository)
	ratings := new(mockRatingCache)
	metadata := new(mockMetadataClient)
	svc := newTestCatalog(repo, metadata, ratings)
	ctx := context.Background()

	movie := newCatalogMovie(1, "12 Angry Men", 96)
	movie.ExternalRef = "tt0050083"
	repo.On("GetByID", ctx, int64(1)).Return(movie, nil)
	ratings.On("Get", ctx, "tt0050083").Return(0.0, false, errors.New("redis down"))
	metadata.On("GetRating", ctx, "tt0050083").Return(9.0, nil)
	ratings.On("Set", ctx, "tt0050083", 9.0).Return(nil)

	rating, err := svc.Rating(ctx, 1)

	require.NoError(t, err)
	assert.InDelta(t, 9.0, rating, 0.001)
}

func TestRating_NoExternalRef(t *testing.T) {
	repo := new(mockMovieRepository)
	svc := newTestCatalog(repo, new(mockMetadataClient), new(mockRatingCache))
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).Return(newCatalogMovie(1, "Unreleased", 90), nil)

	_, err := svc.Rating(ctx, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
