// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// Create persists a new order snapshot.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByParticipant retrieves all orders where the user is either the
	// customer or the business party, newest first.
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// Update persists changes to an existing order (status transitions).
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUserAndStatus counts orders where the user is the business party
	// and the order carries the given status.
	CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.OrderStatus) (int64, error)
}
