// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// AuthUsecase defines the interface for registration and session operations.
type AuthUsecase interface {
	// Register creates a user, an empty profile and a credential, then logs
	// the new user in.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a new token pair. The old
	// refresh token is revoked in the same step.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the session behind the given refresh token. Revoking an
	// unknown token is not an error.
	Logout(ctx context.Context, refreshToken string) error
}

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Username         string `json:"username" validate:"required,max=150"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	RepeatedPassword string `json:"repeated_password" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=customer business"`
}

// LoginInput defines the data required to authenticate.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput is returned by all session-issuing operations.
type AuthOutput struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Type         string    `json:"type"`
	UserID       uuid.UUID `json:"user_id"`
}
