// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/domain/service"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateOrder places an order for the chosen tier. The tier's fields are
// copied onto the order, so later offer edits never touch it.
func (srv *orderService) CreateOrder(ctx context.Context, actor usecase.Actor, input *usecase.CreateOrderInput) (*entity.Order, error) {
	srv.logger.Info("Creating order", "customerID", actor.ID, "offerDetailID", input.OfferDetailID)

	if actor.Type != entity.UserTypeCustomer {
		return nil, domainerrors.ErrNotCustomerUser
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		// 1. Resolve the chosen tier and its parent offer.
		detail, err := offerRepo.FindDetailByID(ctx, input.OfferDetailID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return domainerrors.ErrOfferDetailNotFound
			}

			return errors.Wrap(err, "failed to find offer detail")
		}

		offer, err := offerRepo.FindByID(ctx, detail.OfferID)
		if err != nil {
			return errors.Wrap(err, "failed to find parent offer")
		}

		// 2. Snapshot the tier into a new order.
		created := entity.NewOrderFromDetail(actor.ID, offer.UserID, detail)

		if err := repoFactory.OrderRepo().Create(ctx, created); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		order = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders retrieves all orders the actor participates in, newest first.
func (srv *orderService) ListOrders(ctx context.Context, actor usecase.Actor) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListByParticipant(ctx, actor.ID)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateOrderStatus moves the order through its lifecycle. Only the business
// party may transition, and completed orders are final.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, actor usecase.Actor, orderID uuid.UUID, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	srv.logger.Info("Updating order status", "orderID", orderID, "status", input.Status)

	target := entity.OrderStatus(input.Status)
	if !target.IsValid() {
		return nil, domainerrors.NewValidationError().
			AddFieldError("status", "Status must be one of: in_progress, completed, cancelled.")
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		found, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}

		if decision := service.AllowOrder(actor.Entity(), found, service.ActionUpdate); !decision.Allowed {
			return domainerrors.ErrNotResourceOwner
		}

		if !found.CanTransitionTo(target) {
			if found.Status.IsTerminal() {
				return domainerrors.ErrOrderAlreadyCompleted
			}

			return domainerrors.NewValidationError().
				AddFieldError("status", "Order cannot move from '"+found.Status.String()+"' to '"+target.String()+"'.")
		}

		found.Status = target

		if err := orderRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// DeleteOrder removes an order. Staff only.
func (srv *orderService) DeleteOrder(ctx context.Context, actor usecase.Actor, orderID uuid.UUID) error {
	srv.logger.Info("Deleting order", "orderID", orderID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		found, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}

		if decision := service.AllowOrder(actor.Entity(), found, service.ActionDelete); !decision.Allowed {
			return domainerrors.ErrStaffOnly
		}

		if err := orderRepo.Delete(ctx, orderID); err != nil {
			return errors.Wrap(err, "failed to delete order")
		}

		return nil
	})
}

// CountInProgressOrders counts a business user's in_progress orders.
func (srv *orderService) CountInProgressOrders(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return srv.countByStatus(ctx, businessUserID, entity.OrderStatusInProgress)
}

// CountCompletedOrders counts a business user's completed orders.
func (srv *orderService) CountCompletedOrders(ctx context.Context, businessUserID uuid.UUID) (int64, error) {
	return srv.countByStatus(ctx, businessUserID, entity.OrderStatusCompleted)
}

// countByStatus verifies the target is an existing business user before
// counting; unknown or non-business users yield a not-found outcome.
func (srv *orderService) countByStatus(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	var count int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, businessUserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if user.Type != entity.UserTypeBusiness {
			return domainerrors.ErrUserNotFound
		}

		counted, err := repoFactory.OrderRepo().CountByUserAndStatus(ctx, businessUserID, status)
		if err != nil {
			return errors.Wrap(err, "failed to count orders")
		}
		count = counted

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
