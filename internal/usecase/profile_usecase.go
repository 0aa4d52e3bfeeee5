// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile retrieves a user together with their profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies a partial update. Only the profile owner may call
	// this on their own profile.
	UpdateProfile(ctx context.Context, actor Actor, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// UpdateProfileImage stores a new profile image and replaces the old one.
	UpdateProfileImage(ctx context.Context, actor Actor, userID uuid.UUID, filename string, content io.Reader) (*entity.User, error)

	// ListBusinessProfiles retrieves all business users with their profiles.
	ListBusinessProfiles(ctx context.Context) ([]*entity.User, error)

	// ListCustomerProfiles retrieves all customer users with their profiles.
	ListCustomerProfiles(ctx context.Context) ([]*entity.User, error)
}

// --- Input DTOs ---

// UpdateProfileInput defines the partial-update payload for a profile. Nil
// fields are left untouched.
type UpdateProfileInput struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Location     *string `json:"location,omitempty"`
	Tel          *string `json:"tel,omitempty"`
	Description  *string `json:"description,omitempty"`
	WorkingHours *string `json:"working_hours,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
}
