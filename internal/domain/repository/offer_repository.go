// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for offer persistence.
var (
	// ErrOfferNotFound is returned when an offer does not exist.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrOfferDetailNotFound is returned when an offer detail does not exist.
	ErrOfferDetailNotFound = errors.New("offer detail not found")
)

// Offer list ordering keys. A "-" prefix on the query parameter flips the
// direction; the repository receives the bare key plus a descending flag.
const (
	OfferOrderCreatedAt = "created_at"
	OfferOrderUpdatedAt = "updated_at"
	OfferOrderMinPrice  = "min_price"
)

// OfferFilter captures the supported list filters and ordering. Nil pointer
// fields mean "not filtered".
type OfferFilter struct {
	CreatorID       *uuid.UUID
	MinPrice        *float64 // Matches offers whose derived min price is >= this.
	MaxPrice        *float64 // Matches offers whose derived min price is <= this.
	MaxDeliveryTime *int     // Matches offers whose derived min delivery time is <= this.
	Search          string   // Case-insensitive substring over title and description.
	OrderBy         string   // One of the OfferOrder* keys, default created_at.
	Descending      bool
	Page            int // 1-based page number.
	PageSize        int
}

// OfferRepository defines the operations for offer aggregate persistence.
// Create and Delete always treat the offer and its three details as one unit.
type OfferRepository interface {
	// Create persists an offer together with all of its details atomically.
	Create(ctx context.Context, offer *entity.Offer) error

	// FindByID retrieves a single offer with its details.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// FindDetailByID retrieves a single offer detail.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error)

	// List retrieves offers matching the filter plus the total match count
	// before pagination.
	List(ctx context.Context, filter *OfferFilter) ([]*entity.Offer, int64, error)

	// Update persists changes to the offer's own fields and its details.
	Update(ctx context.Context, offer *entity.Offer) error

	// Delete removes the offer and cascades to its details.
	Delete(ctx context.Context, id uuid.UUID) error
}
