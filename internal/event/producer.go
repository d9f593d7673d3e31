package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/reelist/backend/internal/domain"
	pkgkafka "github.com/reelist/backend/pkg/kafka"
)

// Kafka topic constants for catalog and account domain events.
const (
	TopicMovieCreated   = "reelist.movie.created"
	TopicMovieDeleted   = "reelist.movie.deleted"
	TopicMovieWatched   = "reelist.movie.watched"
	TopicUserRegistered = "reelist.user.registered"
)

// Aggregate type constants.
const (
	AggregateTypeMovie = "movie"
	AggregateTypeUser  = "user"
)

// Source identifier for events originating from this service.
const SourceBackend = "reelist-backend"

// MovieCreatedData is the payload for a movie.created event.
type MovieCreatedData struct {
	ID          int64  `json:"id"`
	ExternalRef string `json:"external_ref,omitempty"`
	Director    string `json:"director"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Year        int    `json:"year"`
	Duration    int    `json:"duration"`
}

// MovieDeletedData is the payload for a movie.deleted event.
type MovieDeletedData struct {
	ID int64 `json:"id"`
}

// MovieWatchedData is the payload for a movie.watched event.
type MovieWatchedData struct {
	ID         int64 `json:"id"`
	WatchCount int   `json:"watch_count"`
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishMovieCreated publishes a movie.created event.
func (p *Producer) PublishMovieCreated(ctx context.Context, m *domain.Movie) error {
	data := MovieCreatedData{
		ID:          m.ID,
		ExternalRef: m.ExternalRef,
		Director:    m.Director,
		Title:       m.Title,
		Genre:       m.Genre,
		Year:        m.Year,
		Duration:    m.Duration,
	}

	event, err := pkgkafka.NewEvent(TopicMovieCreated, strconv.FormatInt(m.ID, 10), AggregateTypeMovie, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create movie.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicMovieCreated, event); err != nil {
		return fmt.Errorf("publish movie.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published movie.created event",
		slog.Int64("movie_id", m.ID),
		slog.String("title", m.Title),
	)

	return nil
}

// PublishMovieDeleted publishes a movie.deleted event.
func (p *Producer) PublishMovieDeleted(ctx context.Context, id int64) error {
	event, err := pkgkafka.NewEvent(TopicMovieDeleted, strconv.FormatInt(id, 10), AggregateTypeMovie, SourceBackend, MovieDeletedData{ID: id})
	if err != nil {
		return fmt.Errorf("create movie.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicMovieDeleted, event); err != nil {
		return fmt.Errorf("publish movie.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published movie.deleted event",
		slog.Int64("movie_id", id),
	)

	return nil
}

// PublishMovieWatched publishes a movie.watched event.
func (p *Producer) PublishMovieWatched(ctx context.Context, id int64, watchCount int) error {
	data := MovieWatchedData{ID: id, WatchCount: watchCount}

	event, err := pkgkafka.NewEvent(TopicMovieWatched, strconv.FormatInt(id, 10), AggregateTypeMovie, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create movie.watched event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicMovieWatched, event); err != nil {
		return fmt.Errorf("publish movie.watched event: %w", err)
	}

	p.logger.DebugContext(ctx, "published movie.watched event",
		slog.Int64("movie_id", id),
		slog.Int("watch_count", watchCount),
	)

	return nil
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Email: user.Email,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}
