// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusInProgress is the initial state of every order.
	OrderStatusInProgress OrderStatus = "in_progress"
	// OrderStatusCompleted is the terminal state of the normal flow.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled is reserved; no API transition produces it yet.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further status transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order links a customer to a business user for one chosen offer tier. The
// tier fields are copied at creation time so later edits to the offer never
// retroactively change historical orders.
type Order struct {
	ID           uuid.UUID // The unique identifier for the order.
	CustomerUser uuid.UUID // The customer who placed the order.
	BusinessUser uuid.UUID // The business user fulfilling the order.

	// Snapshot of the chosen OfferDetail at creation time.
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              float64
	Features           []string
	OfferType          OfferType

	Status    OrderStatus // Mutable lifecycle state.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrderFromDetail builds an order snapshotting the given offer detail for
// the given parties. The features slice is copied so the snapshot cannot
// alias the source detail's backing array.
func NewOrderFromDetail(customerID, businessID uuid.UUID, detail *OfferDetail) *Order {
	features := make([]string, len(detail.Features))
	copy(features, detail.Features)

	return &Order{
		CustomerUser:       customerID,
		BusinessUser:       businessID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           features,
		OfferType:          detail.OfferType,
		Status:             OrderStatusInProgress,
	}
}

// CanTransitionTo reports whether the order may move to the target status.
// The only writable transition is in_progress -> completed.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	return o.Status == OrderStatusInProgress && target == OrderStatusCompleted
}
