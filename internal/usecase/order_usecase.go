// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for order-related business operations.
type OrderUsecase interface {
	// CreateOrder places an order for the chosen offer tier, snapshotting the
	// tier's fields. Only customers may place orders.
	CreateOrder(ctx context.Context, actor Actor, input *CreateOrderInput) (*entity.Order, error)

	// ListOrders retrieves all orders the actor participates in, either side.
	ListOrders(ctx context.Context, actor Actor) ([]*entity.Order, error)

	// UpdateOrderStatus moves an order to a new lifecycle status. Only the
	// business party may do this, and only in_progress orders can move.
	UpdateOrderStatus(ctx context.Context, actor Actor, orderID uuid.UUID, input *UpdateOrderStatusInput) (*entity.Order, error)

	// DeleteOrder removes an order. Staff only.
	DeleteOrder(ctx context.Context, actor Actor, orderID uuid.UUID) error

	// CountInProgressOrders counts a business user's in_progress orders. The
	// user must exist and be a business user.
	CountInProgressOrders(ctx context.Context, businessUserID uuid.UUID) (int64, error)

	// CountCompletedOrders counts a business user's completed orders. The
	// user must exist and be a business user.
	CountCompletedOrders(ctx context.Context, businessUserID uuid.UUID) (int64, error)
}

// --- Input DTOs ---

// CreateOrderInput defines the data required to place an order.
type CreateOrderInput struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" validate:"required"`
}

// UpdateOrderStatusInput defines the status-transition payload.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}
