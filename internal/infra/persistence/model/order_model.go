package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderModel mirrors the 'orders' table. The tier fields are a snapshot of
// the offer detail at creation time and never follow later offer edits.
type OrderModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	BusinessUserID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title              string                      `gorm:"type:varchar(255);not null"`
	Revisions          int                         `gorm:"not null"`
	DeliveryTimeInDays int                         `gorm:"not null"`
	Price              float64                     `gorm:"type:numeric(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"not null"`
	OfferType          string                      `gorm:"type:varchar(20);not null"`

	Status    string `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
