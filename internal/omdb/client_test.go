package omdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/reelist/backend/pkg/errors"
	"github.com/reelist/backend/pkg/httpclient"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hc := httpclient.New(httpclient.Config{
		Timeout:         5 * time.Second,
		MaxRetries:      0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		MaxConnsPerHost: 10,
	})
	cb := httpclient.NewCircuitBreakerClient(hc, httpclient.DefaultCircuitBreakerConfig(t.Name()), logger)
	return NewClient(baseURL, "test-key", cb, logger)
}

func TestClient_GetByTitle_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12 Angry Men", r.URL.Query().Get("t"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Title": "12 Angry Men",
			"Year": "1957",
			"Director": "Sidney Lumet",
			"Genre": "Crime, Drama",
			"Runtime": "96 min",
			"imdbID": "tt0050083",
			"imdbRating": "9.0",
			"Response": "True"
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	data, err := c.GetByTitle(context.Background(), "12 Angry Men")
	require.NoError(t, err)
	assert.Equal(t, "tt0050083", data.IMDBID)
	assert.Equal(t, "Sidney Lumet", data.Director)
}

func TestClient_GetByTitle_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GetByTitle(context.Background(), "No Such Movie")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
}

func TestClient_GetByTitle_InvalidAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Response": "False", "Error": "Invalid API key!"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GetByTitle(context.Background(), "Anything")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Contains(t, appErr.Message, "Invalid API key!")
}

func TestClient_GetRating_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tt0050083", r.URL.Query().Get("i"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imdbRating": "9.0", "Response": "True"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	rating, err := c.GetRating(context.Background(), "tt0050083")
	require.NoError(t, err)
	assert.Equal(t, 9.0, rating)
}

func TestClient_GetRating_NonNumeric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imdbRating": "N/A", "Response": "True"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GetRating(context.Background(), "tt0000000")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "invalid rating")
}

func TestClient_GetRating_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.GetRating(context.Background(), "tt0050083")
	require.Error(t, err)
}
