package service

import (
	"errors"
	"fmt"

	"review-service/internal/model"
)

// Error kinds. Every specific error below wraps one of them, so callers can
// classify with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrListingNotFound = fmt.Errorf("listing %w", ErrNotFound)
	ErrReviewNotFound  = fmt.Errorf("review %w", ErrNotFound)
	ErrImageNotFound   = fmt.Errorf("image %w", ErrNotFound)
	ErrTokenNotFound   = fmt.Errorf("token pair %w", ErrNotFound)

	ErrInvalidAddress = fmt.Errorf("%w: address must contain province, city, district and neighborhood", ErrValidation)
	ErrInvalidPage    = fmt.Errorf("%w: page must not be negative", ErrValidation)
	ErrInvalidPeriod  = fmt.Errorf("%w: residency must not end before it starts", ErrValidation)
	ErrRateOutOfRange = fmt.Errorf("%w: ratings must be between %.0f and %.0f", ErrValidation, model.MinRate, model.MaxRate)

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenOwnerMismatch = errors.New("token pair belongs to another user")
)

func validationError(err error) error {
	return fmt.Errorf("%w: %s", ErrValidation, err.Error())
}

var errEmptyAddress = errors.New("address is required")
