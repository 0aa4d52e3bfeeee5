// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential stores the email/password login secret for a user, kept apart
// from the User entity so profile reads never carry the password hash.
type Credential struct {
	ID           uuid.UUID // The unique ID for this credential record.
	UserID       uuid.UUID // Links this credential to the User it belongs to.
	Email        string    // Login identifier, mirrors users.email.
	PasswordHash string    // The bcrypt-hashed password.
	CreatedAt    time.Time
}

// RefreshToken represents a long-lived, authorized user session. It is used
// to obtain a new access token after the old one expires, without requiring
// credentials.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token for secure comparison.
	ExpiresAt time.Time // When this refresh token becomes invalid.
	CreatedAt time.Time // When this session was created.
}
