package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/reelist/backend/pkg/errors"
	"github.com/reelist/backend/pkg/httpclient"
)

// TitleData is the subset of the OMDB title response the catalog uses for
// enrichment.
type TitleData struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
	Runtime    string `json:"Runtime"`
	IMDBID     string `json:"imdbID"`
	IMDBRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Client fetches movie metadata from the OMDB API. All requests go through a
// circuit breaker so a flapping upstream cannot stall catalog operations.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.CircuitBreakerClient
	logger  *slog.Logger
}

// NewClient creates an OMDB API client.
func NewClient(baseURL, apiKey string, hc *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    hc,
		logger:  logger,
	}
}

// GetByTitle fetches movie metadata by title.
func (c *Client) GetByTitle(ctx context.Context, title string) (*TitleData, error) {
	q := url.Values{}
	q.Set("t", title)
	return c.fetch(ctx, q, title)
}

// GetRating fetches the IMDB rating for a movie by its IMDB id.
func (c *Client) GetRating(ctx context.Context, imdbID string) (float64, error) {
	q := url.Values{}
	q.Set("i", imdbID)

	data, err := c.fetch(ctx, q, imdbID)
	if err != nil {
		return 0, err
	}

	rating, err := strconv.ParseFloat(data.IMDBRating, 64)
	if err != nil {
		return 0, apperrors.Upstream("omdb", fmt.Sprintf("invalid rating %q for %s", data.IMDBRating, imdbID))
	}

	c.logger.InfoContext(ctx, "fetched rating",
		slog.String("imdb_id", imdbID),
		slog.Float64("rating", rating),
	)

	return rating, nil
}

func (c *Client) fetch(ctx context.Context, q url.Values, subject string) (*TitleData, error) {
	q.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "/?" + q.Encode()

	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Upstream("omdb", "request timed out")
		}
		return nil, apperrors.Upstream("omdb", err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Upstream("omdb", fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var data TitleData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, apperrors.Upstream("omdb", fmt.Sprintf("decode response: %v", err))
	}

	// OMDB reports lookup failures as 200 with Response="False".
	if data.Response == "False" {
		if data.Error == "Movie not found!" {
			return nil, apperrors.NotFound("movie", subject)
		}
		return nil, apperrors.Upstream("omdb", data.Error)
	}

	return &data, nil
}
