package service

import (
	"errors"
	"net/http"

	"github.com/reelist/backend/internal/domain"
	apperrors "github.com/reelist/backend/pkg/errors"
)

// translateDomainError maps domain sentinel errors to API errors with
// stable codes and HTTP statuses. Unknown errors pass through unchanged.
func translateDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyWatchlist):
		return &apperrors.AppError{
			Code:    "WATCHLIST_EMPTY",
			Message: "the watchlist is empty",
			Status:  http.StatusNotFound,
			Err:     err,
		}
	case errors.Is(err, domain.ErrNotInWatchlist):
		return &apperrors.AppError{
			Code:    "NOT_IN_WATCHLIST",
			Message: "movie is not in the watchlist",
			Status:  http.StatusNotFound,
			Err:     err,
		}
	case errors.Is(err, domain.ErrDuplicateEntry):
		return &apperrors.AppError{
			Code:    "DUPLICATE_ENTRY",
			Message: "movie is already in the watchlist",
			Status:  http.StatusConflict,
			Err:     err,
		}
	case errors.Is(err, domain.ErrInvalidListNumber):
		return &apperrors.AppError{
			Code:    "INVALID_LIST_NUMBER",
			Message: "list number is out of range",
			Status:  http.StatusBadRequest,
			Err:     err,
		}
	case errors.Is(err, domain.ErrInvalidMovieID):
		return &apperrors.AppError{
			Code:    "INVALID_MOVIE_ID",
			Message: "movie id must not be negative",
			Status:  http.StatusBadRequest,
			Err:     err,
		}
	case errors.Is(err, domain.ErrSelfSwap):
		return &apperrors.AppError{
			Code:    "SELF_SWAP",
			Message: "cannot swap a movie with itself",
			Status:  http.StatusBadRequest,
			Err:     err,
		}
	case errors.Is(err, domain.ErrInvalidYear),
		errors.Is(err, domain.ErrInvalidDuration):
		return apperrors.InvalidInput(err.Error())
	default:
		return err
	}
}
