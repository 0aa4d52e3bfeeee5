// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, profile included.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a single user by their username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// ListByType retrieves all users of the given account type, profiles included.
	ListByType(ctx context.Context, userType entity.UserType) ([]*entity.User, error)

	// Create persists a new user entity together with its profile.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity and its profile in the storage.
	Update(ctx context.Context, user *entity.User) error
}
