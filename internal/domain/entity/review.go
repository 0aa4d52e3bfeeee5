// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review rating bounds, inclusive.
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// Review is a rating and comment written by a customer about a business user.
// At most one review may exist per (reviewer, business user) pair, and a user
// can never review themselves.
type Review struct {
	ID           uuid.UUID // The unique identifier for the review.
	BusinessUser uuid.UUID // The business user being reviewed.
	Reviewer     uuid.UUID // The customer who wrote the review.
	Rating       int       // Rating from 1 to 5 inclusive.
	Description  string    // Free-text review comment.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RatingValid reports whether the rating lies within the permitted 1..5 range.
func RatingValid(rating int) bool {
	return rating >= ReviewRatingMin && rating <= ReviewRatingMax
}
