package postgres

import (
	"testing"
	"time"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The update paths persist via Save, which writes every column. The mappers
// must therefore carry CreatedAt from the loaded entity into the model, or an
// update would rewrite the row's creation time to the zero time.

func TestFromUserDomain_CarriesCreatedAt(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &entity.User{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		Type:      entity.UserTypeCustomer,
		CreatedAt: createdAt,
		Profile: &entity.Profile{
			FirstName: "Alice",
			CreatedAt: createdAt,
		},
	}

	userM := fromUserDomain(user)

	assert.Equal(t, createdAt, userM.CreatedAt)
	require.NotNil(t, userM.Profile)
	assert.Equal(t, createdAt, userM.Profile.CreatedAt)
}

func TestFromOfferDomain_CarriesCreatedAt(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	offer := &entity.Offer{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     "Logo Design",
		CreatedAt: createdAt,
		Details: []entity.OfferDetail{
			{
				ID:        uuid.New(),
				Title:     "Basic Package",
				OfferType: entity.OfferTypeBasic,
				CreatedAt: createdAt,
			},
		},
	}

	offerM := fromOfferDomain(offer)

	assert.Equal(t, createdAt, offerM.CreatedAt)
	require.Len(t, offerM.Details, 1)
	assert.Equal(t, createdAt, offerM.Details[0].CreatedAt)
}

func TestFromOrderDomain_CarriesCreatedAt(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	order := &entity.Order{
		ID:           uuid.New(),
		CustomerUser: uuid.New(),
		BusinessUser: uuid.New(),
		Status:       entity.OrderStatusCompleted,
		CreatedAt:    createdAt,
	}

	orderM := fromOrderDomain(order)

	assert.Equal(t, createdAt, orderM.CreatedAt)
}

func TestFromReviewDomain_CarriesCreatedAt(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	review := &entity.Review{
		ID:           uuid.New(),
		BusinessUser: uuid.New(),
		Reviewer:     uuid.New(),
		Rating:       4,
		CreatedAt:    createdAt,
	}

	reviewM := fromReviewDomain(review)

	assert.Equal(t, createdAt, reviewM.CreatedAt)
}
