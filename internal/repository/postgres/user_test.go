package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelist/backend/internal/domain"
	apperrors "github.com/reelist/backend/pkg/errors"
)

func newUserTestFixture(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewUserRepository(mock)
	return repo, mock
}

func TestUserRepository_Create_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	u := &domain.User{
		ID:           "user-1",
		Email:        "user@example.com",
		PasswordHash: "$2a$12$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-1", "user@example.com", "$2a$12$hash", now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), u)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-1", "user@example.com", "$2a$12$hash", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), &domain.User{
		ID:           "user-1",
		Email:        "user@example.com",
		PasswordHash: "$2a$12$hash",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
		AddRow("user-1", "user@example.com", "$2a$12$hash", now, now)

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("user@example.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("missing@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}))

	_, err := repo.GetByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword_Success(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("$2a$12$newhash", pgxmock.AnyArg(), "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdatePassword(context.Background(), "user-1", "$2a$12$newhash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword_NotFound(t *testing.T) {
	repo, mock := newUserTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("$2a$12$newhash", pgxmock.AnyArg(), "user-missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdatePassword(context.Background(), "user-missing", "$2a$12$newhash")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
