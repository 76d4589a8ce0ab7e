package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/types"
)

// notFoundOr converts gorm.ErrRecordNotFound into a NotFoundError for
// resource and wraps anything else with op.
func notFoundOr(err error, resource, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NotFound(resource)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// duplicateOr converts a unique-constraint violation into a ValidationError
// carrying msg and wraps anything else with op.
func duplicateOr(err error, msg, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &types.ValidationError{Message: msg}
	}
	return fmt.Errorf("%s: %w", op, err)
}
