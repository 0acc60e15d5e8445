package usecase

import (
	"errors"

	"github.com/jackwardell/partypeople/internal/domain/sweepstake"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrEntryNotFound         = errors.New("entry not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrUserNotFound marks a missing user, as opposed to a missing team or
	// owner join. It is always paired with ErrEntryNotFound.
	ErrUserNotFound = errors.New("user not found")

	ErrAmbiguousResult  = sweepstake.ErrAmbiguousResult
	ErrInsufficientData = sweepstake.ErrInsufficientData
)
