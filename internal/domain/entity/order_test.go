package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderFromDetail_Snapshot(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	businessID := uuid.New()
	detail := &OfferDetail{
		Title:              "Basic Package",
		Revisions:          2,
		DeliveryTimeInDays: 5,
		Price:              100,
		Features:           []string{"Logo", "Card"},
		OfferType:          OfferTypeBasic,
	}

	order := NewOrderFromDetail(customerID, businessID, detail)

	require.NotNil(t, order)
	assert.Equal(t, customerID, order.CustomerUser)
	assert.Equal(t, businessID, order.BusinessUser)
	assert.Equal(t, detail.Title, order.Title)
	assert.Equal(t, detail.Revisions, order.Revisions)
	assert.Equal(t, detail.DeliveryTimeInDays, order.DeliveryTimeInDays)
	assert.InDelta(t, detail.Price, order.Price, 0.001)
	assert.Equal(t, detail.Features, order.Features)
	assert.Equal(t, detail.OfferType, order.OfferType)
	assert.Equal(t, OrderStatusInProgress, order.Status)

	// The snapshot must not alias the detail's features slice.
	detail.Features[0] = "changed"
	assert.Equal(t, "Logo", order.Features[0])
}

func TestOrder_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		from   OrderStatus
		to     OrderStatus
		expect bool
	}{
		{name: "in_progress to completed", from: OrderStatusInProgress, to: OrderStatusCompleted, expect: true},
		{name: "in_progress to cancelled", from: OrderStatusInProgress, to: OrderStatusCancelled, expect: false},
		{name: "in_progress to in_progress", from: OrderStatusInProgress, to: OrderStatusInProgress, expect: false},
		{name: "completed to in_progress", from: OrderStatusCompleted, to: OrderStatusInProgress, expect: false},
		{name: "completed to completed", from: OrderStatusCompleted, to: OrderStatusCompleted, expect: false},
		{name: "cancelled to completed", from: OrderStatusCancelled, to: OrderStatusCompleted, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			order := &Order{Status: tt.from}
			assert.Equal(t, tt.expect, order.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, OrderStatusInProgress.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}
