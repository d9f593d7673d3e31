package omdb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const ratingKeyPrefix = "omdb:rating:"

// RatingCache stores fetched IMDB ratings in Redis so repeated rating lookups
// do not hit the OMDB API.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache creates a Redis-backed rating cache.
func NewRatingCache(client *redis.Client, ttl time.Duration) *RatingCache {
	return &RatingCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached rating for an IMDB id. The second return value is
// false on a cache miss.
func (c *RatingCache) Get(ctx context.Context, imdbID string) (float64, bool, error) {
	val, err := c.client.Get(ctx, ratingKeyPrefix+imdbID).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get rating: %w", err)
	}

	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse cached rating: %w", err)
	}

	return rating, true, nil
}

// Set stores a rating with the configured TTL.
func (c *RatingCache) Set(ctx context.Context, imdbID string, rating float64) error {
	val := strconv.FormatFloat(rating, 'f', -1, 64)
	if err := c.client.Set(ctx, ratingKeyPrefix+imdbID, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set rating: %w", err)
	}
	return nil
}
