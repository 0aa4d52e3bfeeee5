// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for review persistence.
var (
	// ErrReviewNotFound is returned when a review does not exist.
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when the (reviewer, business user) pair
	// already has a review. The unique index on that pair guarantees this even
	// under concurrent creates.
	ErrDuplicateReview = errors.New("review for this pair already exists")
)

// Review list ordering keys.
const (
	ReviewOrderUpdatedAt = "updated_at"
	ReviewOrderRating    = "rating"
)

// ReviewFilter captures the supported list filters; both ID filters are
// optional and combine with AND semantics.
type ReviewFilter struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	OrderBy        string // One of the ReviewOrder* keys, default updated_at.
	Descending     bool
}

// ReviewRepository defines the operations for review persistence.
type ReviewRepository interface {
	// Create persists a new review. Returns ErrDuplicateReview when the
	// (reviewer, business user) pair is already taken.
	Create(ctx context.Context, review *entity.Review) error

	// FindByID retrieves a single review.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// ExistsForPair reports whether the reviewer has already reviewed the
	// business user.
	ExistsForPair(ctx context.Context, reviewerID, businessUserID uuid.UUID) (bool, error)

	// List retrieves reviews matching the filter.
	List(ctx context.Context, filter *ReviewFilter) ([]*entity.Review, error)

	// Update persists changes to an existing review.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error
}
