package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OfferModel mirrors the 'offers' table. An offer always carries exactly
// three detail rows, one per pricing tier.
type OfferModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Image       string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Details []OfferDetailModel `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}

// OfferDetailModel mirrors the 'offer_details' table. Features are stored as
// a JSON array in a single column.
type OfferDetailModel struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OfferID            uuid.UUID                   `gorm:"type:uuid;not null;index;uniqueIndex:idx_offer_details_offer_type"`
	Title              string                      `gorm:"type:varchar(255);not null"`
	Revisions          int                         `gorm:"not null"`
	DeliveryTimeInDays int                         `gorm:"not null"`
	Price              float64                     `gorm:"type:numeric(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"not null"`
	OfferType          string                      `gorm:"type:varchar(20);not null;uniqueIndex:idx_offer_details_offer_type"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (OfferDetailModel) TableName() string {
	return "offer_details"
}
