package handler

import (
	"log/slog"
	"net/http"

	"github.com/hcplayer1988/coderr/internal/delivery/http/response"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateOrder handles the order placement request.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	input := new(usecase.CreateOrderInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), actorFromContext(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order), "Order created successfully")
}

// ListOrders handles the participant-scoped order listing.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context(), actorFromContext(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponses(orders), "")
}

// UpdateOrderStatus handles the order lifecycle transition.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	input := new(usecase.UpdateOrderStatusInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), actorFromContext(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "Order updated successfully")
}

// DeleteOrder handles the staff-only order deletion.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), actorFromContext(c), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CountInProgressOrders handles the in-progress order count projection.
func (h *OrderHandler) CountInProgressOrders(c echo.Context) error {
	userID, err := pathUUID(c, "user_id")
	if err != nil {
		return err
	}

	count, err := h.uc.CountInProgressOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"order_count": count}, "")
}

// CountCompletedOrders handles the completed order count projection.
func (h *OrderHandler) CountCompletedOrders(c echo.Context) error {
	userID, err := pathUUID(c, "user_id")
	if err != nil {
		return err
	}

	count, err := h.uc.CountCompletedOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"completed_order_count": count}, "")
}
