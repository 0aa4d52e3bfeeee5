// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
)

// Domain-specific errors for authentication persistence. These let the
// application layer handle specific outcomes without depending on
// database-specific errors.
var (
	// ErrCredentialNotFound is returned when no credential exists for a lookup.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrTokenNotFound is returned when a refresh token is not found.
	ErrTokenNotFound = errors.New("refresh token not found")
)

// AuthRepository defines the standard operations for authentication-related persistence.
type AuthRepository interface {
	// CreateCredential persists a new email/password credential.
	CreateCredential(ctx context.Context, cred *entity.Credential) error

	// FindCredentialByEmail retrieves a credential by its login email.
	FindCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// CreateRefreshToken persists a new refresh token, representing a user session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its securely stored hash.
	FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash deletes a refresh token by its hash, effectively ending a session.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error
}
