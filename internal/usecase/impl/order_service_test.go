package impl

import (
	"context"
	"testing"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service usecase.OrderUsecase
	store   *fakeStore
}

func createTestOrderService(t *testing.T) *orderServiceFixtures {
	t.Helper()

	store := newFakeStore()
	service := NewOrderService(&fakeTxManager{store: store}, newDiscardLogger())

	return &orderServiceFixtures{
		service: service,
		store:   store,
	}
}

func TestOrderService_CreateOrder_SnapshotsTier(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	business := businessActor()
	customer := customerActor()
	offer := seedOffer(fixtures.store, business.ID)
	detail := offer.DetailByType(entity.OfferTypePremium)

	order, err := fixtures.service.CreateOrder(context.Background(), customer, &usecase.CreateOrderInput{
		OfferDetailID: detail.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, customer.ID, order.CustomerUser)
	assert.Equal(t, business.ID, order.BusinessUser)
	assert.Equal(t, detail.Title, order.Title)
	assert.Equal(t, detail.Revisions, order.Revisions)
	assert.Equal(t, detail.DeliveryTimeInDays, order.DeliveryTimeInDays)
	assert.InDelta(t, detail.Price, order.Price, 0.001)
	assert.Equal(t, detail.Features, order.Features)
	assert.Equal(t, entity.OfferTypePremium, order.OfferType)
	assert.Equal(t, entity.OrderStatusInProgress, order.Status)
	assert.Len(t, fixtures.store.orders, 1)
}

func TestOrderService_CreateOrder_BusinessForbidden(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)

	_, err := fixtures.service.CreateOrder(context.Background(), businessActor(), &usecase.CreateOrderInput{
		OfferDetailID: uuid.New(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotCustomerUser)
}

func TestOrderService_CreateOrder_DetailNotFound(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)

	_, err := fixtures.service.CreateOrder(context.Background(), customerActor(), &usecase.CreateOrderInput{
		OfferDetailID: uuid.New(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrOfferDetailNotFound)
}

func TestOrderService_ListOrders_OnlyParticipants(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	customer := customerActor()
	fixtures.store.addOrder(&entity.Order{
		CustomerUser: customer.ID,
		BusinessUser: uuid.New(),
		Status:       entity.OrderStatusInProgress,
	})
	fixtures.store.addOrder(&entity.Order{
		CustomerUser: uuid.New(),
		BusinessUser: uuid.New(),
		Status:       entity.OrderStatusInProgress,
	})

	orders, err := fixtures.service.ListOrders(context.Background(), customer)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, customer.ID, orders[0].CustomerUser)
}

func TestOrderService_UpdateOrderStatus_Complete(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	business := businessActor()
	order := fixtures.store.addOrder(&entity.Order{
		CustomerUser: uuid.New(),
		BusinessUser: business.ID,
		Status:       entity.OrderStatusInProgress,
	})

	updated, err := fixtures.service.UpdateOrderStatus(context.Background(), business, order.ID, &usecase.UpdateOrderStatusInput{
		Status: "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, updated.Status)
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)

	_, err := fixtures.service.UpdateOrderStatus(context.Background(), businessActor(), uuid.New(), &usecase.UpdateOrderStatusInput{
		Status: "done",
	})

	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors(), "status")
}

func TestOrderService_UpdateOrderStatus_CustomerForbidden(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	customer := customerActor()
	order := fixtures.store.addOrder(&entity.Order{
		CustomerUser: customer.ID,
		BusinessUser: uuid.New(),
		Status:       entity.OrderStatusInProgress,
	})

	_, err := fixtures.service.UpdateOrderStatus(context.Background(), customer, order.ID, &usecase.UpdateOrderStatusInput{
		Status: "completed",
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotResourceOwner)
}

func TestOrderService_UpdateOrderStatus_CompletedIsFinal(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	business := businessActor()
	order := fixtures.store.addOrder(&entity.Order{
		CustomerUser: uuid.New(),
		BusinessUser: business.ID,
		Status:       entity.OrderStatusCompleted,
	})

	_, err := fixtures.service.UpdateOrderStatus(context.Background(), business, order.ID, &usecase.UpdateOrderStatusInput{
		Status: "in_progress",
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderAlreadyCompleted)
}

func TestOrderService_UpdateOrderStatus_CancelNotOffered(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	business := businessActor()
	order := fixtures.store.addOrder(&entity.Order{
		CustomerUser: uuid.New(),
		BusinessUser: business.ID,
		Status:       entity.OrderStatusInProgress,
	})

	_, err := fixtures.service.UpdateOrderStatus(context.Background(), business, order.ID, &usecase.UpdateOrderStatusInput{
		Status: "cancelled",
	})

	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors(), "status")
	assert.Equal(t, entity.OrderStatusInProgress, fixtures.store.orders[order.ID].Status)
}

func TestOrderService_DeleteOrder_StaffOnly(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	business := businessActor()
	order := fixtures.store.addOrder(&entity.Order{
		CustomerUser: uuid.New(),
		BusinessUser: business.ID,
		Status:       entity.OrderStatusInProgress,
	})

	err := fixtures.service.DeleteOrder(context.Background(), business, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrStaffOnly)

	staff := usecase.Actor{ID: uuid.New(), Type: entity.UserTypeCustomer, IsStaff: true}
	require.NoError(t, fixtures.service.DeleteOrder(context.Background(), staff, order.ID))
	assert.Empty(t, fixtures.store.orders)
}

func TestOrderService_CountOrders_ByStatus(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	business := fixtures.store.addUser(&entity.User{
		Username: "studio",
		Email:    "studio@example.com",
		Type:     entity.UserTypeBusiness,
	})
	for range 3 {
		fixtures.store.addOrder(&entity.Order{
			CustomerUser: uuid.New(),
			BusinessUser: business.ID,
			Status:       entity.OrderStatusInProgress,
		})
	}
	fixtures.store.addOrder(&entity.Order{
		CustomerUser: uuid.New(),
		BusinessUser: business.ID,
		Status:       entity.OrderStatusCompleted,
	})

	inProgress, err := fixtures.service.CountInProgressOrders(context.Background(), business.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), inProgress)

	completed, err := fixtures.service.CountCompletedOrders(context.Background(), business.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)
}

func TestOrderService_CountOrders_TargetMustBeBusiness(t *testing.T) {
	t.Parallel()

	fixtures := createTestOrderService(t)
	customer := fixtures.store.addUser(&entity.User{
		Username: "alice",
		Email:    "alice@example.com",
		Type:     entity.UserTypeCustomer,
	})

	_, err := fixtures.service.CountInProgressOrders(context.Background(), customer.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = fixtures.service.CountCompletedOrders(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
