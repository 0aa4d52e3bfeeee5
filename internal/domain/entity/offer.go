// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OfferType identifies one of the three fixed pricing tiers of an offer.
type OfferType string

const (
	// OfferTypeBasic is the entry tier.
	OfferTypeBasic OfferType = "basic"
	// OfferTypeStandard is the middle tier.
	OfferTypeStandard OfferType = "standard"
	// OfferTypePremium is the top tier.
	OfferTypePremium OfferType = "premium"
)

// String returns the string representation of the OfferType.
func (t OfferType) String() string {
	return string(t)
}

// IsValid checks if the OfferType is a valid value.
func (t OfferType) IsValid() bool {
	switch t {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	default:
		return false
	}
}

// RevisionsUnlimited is the sentinel revision count meaning "unlimited".
const RevisionsUnlimited = -1

// OfferDetailCount is the fixed number of tiers every offer must define.
const OfferDetailCount = 3

// Offer is a business user's service listing. It owns exactly three
// OfferDetail children, one per tier; that cardinality is a hard invariant
// enforced before anything is persisted.
type Offer struct {
	ID          uuid.UUID     // The unique identifier for the offer.
	UserID      uuid.UUID     // The business user who created this offer.
	Title       string        // Title of the offer.
	Image       string        // Object key of the offer image, empty if none.
	Description string        // Detailed description of the offer.
	Details     []OfferDetail // Exactly three tiers: basic, standard, premium.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OfferDetail is one pricing tier of an offer. Details have no existence
// independent of their parent offer.
type OfferDetail struct {
	ID                 uuid.UUID // The unique identifier for the detail.
	OfferID            uuid.UUID // The offer this detail belongs to.
	Title              string    // Title of this tier, e.g. "Basic Package".
	Revisions          int       // Included revisions; RevisionsUnlimited means unlimited.
	DeliveryTimeInDays int       // Delivery time in days, always positive.
	Price              float64   // Price for this tier, never negative.
	Features           []string  // Ordered list of included features.
	OfferType          OfferType // Tier label, unique within the parent offer.
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// MinPrice returns the lowest price among the offer's details, 0 when the
// offer has no details loaded.
func (o *Offer) MinPrice() float64 {
	if len(o.Details) == 0 {
		return 0
	}

	min := o.Details[0].Price
	for _, d := range o.Details[1:] {
		if d.Price < min {
			min = d.Price
		}
	}

	return min
}

// MinDeliveryTime returns the lowest delivery time in days among the offer's
// details, 0 when the offer has no details loaded.
func (o *Offer) MinDeliveryTime() int {
	if len(o.Details) == 0 {
		return 0
	}

	min := o.Details[0].DeliveryTimeInDays
	for _, d := range o.Details[1:] {
		if d.DeliveryTimeInDays < min {
			min = d.DeliveryTimeInDays
		}
	}

	return min
}

// DetailByType returns the detail carrying the given tier label, nil when the
// tier is not present.
func (o *Offer) DetailByType(offerType OfferType) *OfferDetail {
	for i := range o.Details {
		if o.Details[i].OfferType == offerType {
			return &o.Details[i]
		}
	}

	return nil
}

// FieldError describes a single validation failure, attributed to a field
// path so clients can distinguish per-field problems from non-field ones.
type FieldError struct {
	Field   string // Dotted path of the offending field, empty for non-field errors.
	Message string
}

// Validate checks the offer's own fields and its tier invariant: exactly
// three details whose offer_type values are exactly the set
// {basic, standard, premium}. It returns every violation found so callers
// can surface all of them at once.
func (o *Offer) Validate() []FieldError {
	var errs []FieldError

	if o.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title must not be empty."})
	}
	if o.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "Description must not be empty."})
	}

	if len(o.Details) != OfferDetailCount {
		errs = append(errs, FieldError{
			Field:   "details",
			Message: fmt.Sprintf("An offer must contain exactly %d details.", OfferDetailCount),
		})

		return errs
	}

	seen := make(map[OfferType]bool, OfferDetailCount)
	for i := range o.Details {
		d := &o.Details[i]
		prefix := fmt.Sprintf("details.%d.", i)

		if !d.OfferType.IsValid() {
			errs = append(errs, FieldError{
				Field:   prefix + "offer_type",
				Message: "Offer type must be one of: basic, standard, premium.",
			})
		} else if seen[d.OfferType] {
			errs = append(errs, FieldError{
				Field:   prefix + "offer_type",
				Message: fmt.Sprintf("Duplicate offer type %q.", d.OfferType),
			})
		}
		seen[d.OfferType] = true

		errs = append(errs, d.validateFields(prefix)...)
	}

	for _, required := range []OfferType{OfferTypeBasic, OfferTypeStandard, OfferTypePremium} {
		if !seen[required] {
			errs = append(errs, FieldError{
				Field:   "details",
				Message: fmt.Sprintf("Missing offer type %q.", required),
			})
		}
	}

	return errs
}

// ValidateUpdate checks a detail's fields for a partial update, where the tier
// label itself is fixed and only the mutable fields are verified.
func (d *OfferDetail) ValidateUpdate() []FieldError {
	return d.validateFields("")
}

func (d *OfferDetail) validateFields(prefix string) []FieldError {
	var errs []FieldError

	if d.Title == "" {
		errs = append(errs, FieldError{Field: prefix + "title", Message: "Title must not be empty."})
	}
	if d.Price < 0 {
		errs = append(errs, FieldError{Field: prefix + "price", Message: "Price cannot be negative."})
	}
	if d.DeliveryTimeInDays <= 0 {
		errs = append(errs, FieldError{
			Field:   prefix + "delivery_time_in_days",
			Message: "Delivery time must be positive.",
		})
	}
	if d.Revisions < RevisionsUnlimited {
		errs = append(errs, FieldError{
			Field:   prefix + "revisions",
			Message: "Revisions must be -1 (unlimited) or a non-negative number.",
		})
	}

	return errs
}
