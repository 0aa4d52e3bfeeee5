// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewUsecase defines the interface for review-related business operations.
type ReviewUsecase interface {
	// CreateReview creates a review about a business user. Only customers may
	// review, self-reviews are rejected, and each (reviewer, business user)
	// pair may hold at most one review.
	CreateReview(ctx context.Context, actor Actor, input *CreateReviewInput) (*entity.Review, error)

	// ListReviews retrieves reviews matching the filters.
	ListReviews(ctx context.Context, input *ListReviewsInput) ([]*entity.Review, error)

	// UpdateReview applies a partial update. Only the author may edit.
	UpdateReview(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateReviewInput) (*entity.Review, error)

	// DeleteReview removes a review. Only the author may delete.
	DeleteReview(ctx context.Context, actor Actor, id uuid.UUID) error
}

// --- Input DTOs ---

// CreateReviewInput defines the data required to create a review.
type CreateReviewInput struct {
	BusinessUser uuid.UUID `json:"business_user" validate:"required"`
	Rating       int       `json:"rating" validate:"required"`
	Description  string    `json:"description"`
}

// UpdateReviewInput defines the partial-update payload for a review.
type UpdateReviewInput struct {
	Rating      *int    `json:"rating,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListReviewsInput defines the supported list filters and ordering.
type ListReviewsInput struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       string // updated_at or rating; listings always sort descending.
}
