// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// OfferUsecase defines the interface for offer-related business operations.
type OfferUsecase interface {
	// CreateOffer creates an offer with exactly three tier details. Only
	// business users may create offers.
	CreateOffer(ctx context.Context, actor Actor, input *CreateOfferInput) (*entity.Offer, error)

	// GetOffer retrieves a single offer with its details.
	GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// GetOfferDetail retrieves a single tier detail.
	GetOfferDetail(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error)

	// ListOffers retrieves offers matching the filters, paginated, together
	// with the creators of the returned page.
	ListOffers(ctx context.Context, input *ListOffersInput) (*ListOffersOutput, error)

	// UpdateOffer applies a partial update. Tier details are addressed by
	// their offer_type; the tier set itself can never change.
	UpdateOffer(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateOfferInput) (*entity.Offer, error)

	// UpdateOfferImage stores a new offer image and replaces the old one.
	UpdateOfferImage(ctx context.Context, actor Actor, id uuid.UUID, filename string, content io.Reader) (*entity.Offer, error)

	// DeleteOffer removes an offer and its details. Only the creator may
	// delete it.
	DeleteOffer(ctx context.Context, actor Actor, id uuid.UUID) error
}

// --- Input DTOs ---

// OfferDetailInput defines one tier of an offer at creation time.
type OfferDetailInput struct {
	Title              string   `json:"title"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Price              float64  `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

// CreateOfferInput defines the data required to create an offer.
type CreateOfferInput struct {
	Title       string             `json:"title" validate:"required,max=255"`
	Description string             `json:"description"`
	Details     []OfferDetailInput `json:"details"`
}

// UpdateOfferDetailInput defines the partial-update payload for one tier.
// OfferType selects the tier; nil fields are left untouched.
type UpdateOfferDetailInput struct {
	OfferType          string    `json:"offer_type" validate:"required,oneof=basic standard premium"`
	Title              *string   `json:"title,omitempty"`
	Revisions          *int      `json:"revisions,omitempty"`
	DeliveryTimeInDays *int      `json:"delivery_time_in_days,omitempty"`
	Price              *float64  `json:"price,omitempty"`
	Features           *[]string `json:"features,omitempty"`
}

// UpdateOfferInput defines the partial-update payload for an offer.
type UpdateOfferInput struct {
	Title       *string                  `json:"title,omitempty"`
	Description *string                  `json:"description,omitempty"`
	Details     []UpdateOfferDetailInput `json:"details,omitempty"`
}

// ListOffersInput defines the supported list filters, ordering and pagination.
type ListOffersInput struct {
	CreatorID       *uuid.UUID
	MinPrice        *float64
	MaxPrice        *float64
	MaxDeliveryTime *int
	Search          string
	Ordering        string // created_at, updated_at or min_price, "-" prefix for descending; default newest first.
	Page            int
	PageSize        int
}

// --- Output DTOs ---

// ListOffersOutput carries one page of offers, the total match count and the
// users who created the returned offers, keyed by user ID.
type ListOffersOutput struct {
	Offers   []*entity.Offer
	Total    int64
	Page     int
	PageSize int
	Creators map[uuid.UUID]*entity.User
}
