package impl

import (
	"context"
	"strings"
	"testing"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offerServiceFixtures struct {
	service usecase.OfferUsecase
	store   *fakeStore
	storage *fakeStorage
}

func createTestOfferService(t *testing.T) *offerServiceFixtures {
	t.Helper()

	store := newFakeStore()
	storage := &fakeStorage{}
	service := NewOfferService(&fakeTxManager{store: store}, storage, newTestConfig(), newDiscardLogger())

	return &offerServiceFixtures{
		service: service,
		store:   store,
		storage: storage,
	}
}

func businessActor() usecase.Actor {
	return usecase.Actor{ID: uuid.New(), Type: entity.UserTypeBusiness}
}

func customerActor() usecase.Actor {
	return usecase.Actor{ID: uuid.New(), Type: entity.UserTypeCustomer}
}

func createOfferInput() *usecase.CreateOfferInput {
	return &usecase.CreateOfferInput{
		Title:       "Logo Design",
		Description: "Professional logo design",
		Details: []usecase.OfferDetailInput{
			{Title: "Basic Package", Revisions: 2, DeliveryTimeInDays: 5, Price: 100, Features: []string{"Logo"}, OfferType: "basic"},
			{Title: "Standard Package", Revisions: 5, DeliveryTimeInDays: 7, Price: 200, Features: []string{"Logo", "Card"}, OfferType: "standard"},
			{Title: "Premium Package", Revisions: -1, DeliveryTimeInDays: 10, Price: 500, Features: []string{"Logo", "Card", "Letterhead"}, OfferType: "premium"},
		},
	}
}

func seedOffer(store *fakeStore, userID uuid.UUID) *entity.Offer {
	return store.addOffer(&entity.Offer{
		UserID:      userID,
		Title:       "Logo Design",
		Description: "Professional logo design",
		Details: []entity.OfferDetail{
			{Title: "Basic Package", Revisions: 2, DeliveryTimeInDays: 5, Price: 100, Features: []string{"Logo"}, OfferType: entity.OfferTypeBasic},
			{Title: "Standard Package", Revisions: 5, DeliveryTimeInDays: 7, Price: 200, Features: []string{"Logo", "Card"}, OfferType: entity.OfferTypeStandard},
			{Title: "Premium Package", Revisions: -1, DeliveryTimeInDays: 10, Price: 500, Features: []string{"Logo", "Card", "Letterhead"}, OfferType: entity.OfferTypePremium},
		},
	})
}

func TestOfferService_CreateOffer_Success(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	actor := businessActor()

	offer, err := fixtures.service.CreateOffer(context.Background(), actor, createOfferInput())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, offer.ID)
	assert.Equal(t, actor.ID, offer.UserID)
	require.Len(t, offer.Details, 3)
	for _, detail := range offer.Details {
		assert.NotEqual(t, uuid.Nil, detail.ID)
		assert.Equal(t, offer.ID, detail.OfferID)
	}
	assert.Len(t, fixtures.store.offers, 1)
}

func TestOfferService_CreateOffer_CustomerForbidden(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)

	_, err := fixtures.service.CreateOffer(context.Background(), customerActor(), createOfferInput())

	assert.ErrorIs(t, err, domainerrors.ErrNotBusinessUser)
	assert.Empty(t, fixtures.store.offers)
}

func TestOfferService_CreateOffer_WrongTierCount(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)

	input := createOfferInput()
	input.Details = input.Details[:2]

	_, err := fixtures.service.CreateOffer(context.Background(), businessActor(), input)

	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors(), "details")
}

func TestOfferService_GetOffer_NotFound(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)

	_, err := fixtures.service.GetOffer(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrOfferNotFound)
}

func TestOfferService_GetOfferDetail_Success(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	offer := seedOffer(fixtures.store, uuid.New())

	detail, err := fixtures.service.GetOfferDetail(context.Background(), offer.Details[1].ID)

	require.NoError(t, err)
	assert.Equal(t, entity.OfferTypeStandard, detail.OfferType)
}

func TestOfferService_ListOffers_ResolvesCreators(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	creator := fixtures.store.addUser(&entity.User{
		Username: "studio",
		Email:    "studio@example.com",
		Type:     entity.UserTypeBusiness,
	})
	seedOffer(fixtures.store, creator.ID)
	seedOffer(fixtures.store, creator.ID)

	output, err := fixtures.service.ListOffers(context.Background(), &usecase.ListOffersInput{})

	require.NoError(t, err)
	assert.Equal(t, int64(2), output.Total)
	assert.Len(t, output.Offers, 2)
	require.Contains(t, output.Creators, creator.ID)
	assert.Equal(t, "studio", output.Creators[creator.ID].Username)
}

func TestOfferService_ListOffers_FilterByCreator(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	wanted := uuid.New()
	seedOffer(fixtures.store, wanted)
	seedOffer(fixtures.store, uuid.New())

	output, err := fixtures.service.ListOffers(context.Background(), &usecase.ListOffersInput{
		CreatorID: &wanted,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), output.Total)
	require.Len(t, output.Offers, 1)
	assert.Equal(t, wanted, output.Offers[0].UserID)
}

func TestOfferService_ListOffers_PaginationClamped(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)

	output, err := fixtures.service.ListOffers(context.Background(), &usecase.ListOffersInput{
		Page:     0,
		PageSize: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, 100, output.PageSize)
}

func TestOfferService_ListOffers_DefaultPageSize(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)

	output, err := fixtures.service.ListOffers(context.Background(), &usecase.ListOffersInput{})

	require.NoError(t, err)
	assert.Equal(t, 10, output.PageSize)
}

func TestOfferService_BuildOfferFilter_Ordering(t *testing.T) {
	t.Parallel()

	srv := &offerService{cfg: newTestConfig()}

	tests := []struct {
		name        string
		ordering    string
		wantOrderBy string
		wantDesc    bool
	}{
		{name: "no ordering defaults to newest first", ordering: "", wantOrderBy: repository.OfferOrderCreatedAt, wantDesc: true},
		{name: "unknown key falls back to newest first", ordering: "garbage", wantOrderBy: repository.OfferOrderCreatedAt, wantDesc: true},
		{name: "explicit created_at is ascending", ordering: "created_at", wantOrderBy: repository.OfferOrderCreatedAt, wantDesc: false},
		{name: "explicit updated_at is ascending", ordering: "updated_at", wantOrderBy: repository.OfferOrderUpdatedAt, wantDesc: false},
		{name: "prefixed min_price is descending", ordering: "-min_price", wantOrderBy: repository.OfferOrderMinPrice, wantDesc: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filter := srv.buildOfferFilter(&usecase.ListOffersInput{Ordering: tt.ordering})
			assert.Equal(t, tt.wantOrderBy, filter.OrderBy)
			assert.Equal(t, tt.wantDesc, filter.Descending)
		})
	}
}

func TestOfferService_UpdateOffer_PartialTierUpdate(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	actor := businessActor()
	offer := seedOffer(fixtures.store, actor.ID)

	newPrice := 250.0
	newTitle := "Brand Design"

	updated, err := fixtures.service.UpdateOffer(context.Background(), actor, offer.ID, &usecase.UpdateOfferInput{
		Title: &newTitle,
		Details: []usecase.UpdateOfferDetailInput{
			{OfferType: "standard", Price: &newPrice},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Brand Design", updated.Title)

	standard := updated.DetailByType(entity.OfferTypeStandard)
	require.NotNil(t, standard)
	assert.InDelta(t, 250.0, standard.Price, 0.001)
	// Untouched tiers keep their values.
	assert.InDelta(t, 100.0, updated.DetailByType(entity.OfferTypeBasic).Price, 0.001)
	assert.Equal(t, "Standard Package", standard.Title)
}

func TestOfferService_UpdateOffer_UnknownTier(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	actor := businessActor()
	offer := seedOffer(fixtures.store, actor.ID)

	_, err := fixtures.service.UpdateOffer(context.Background(), actor, offer.ID, &usecase.UpdateOfferInput{
		Details: []usecase.UpdateOfferDetailInput{
			{OfferType: "deluxe"},
		},
	})

	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.FieldErrors(), "details")
	assert.True(t, strings.Contains(vErr.FieldErrors()["details"][0], "deluxe"))
}

func TestOfferService_UpdateOffer_NotOwner(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	offer := seedOffer(fixtures.store, uuid.New())

	newTitle := "Hijacked"

	_, err := fixtures.service.UpdateOffer(context.Background(), businessActor(), offer.ID, &usecase.UpdateOfferInput{
		Title: &newTitle,
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotResourceOwner)
}

func TestOfferService_UpdateOffer_RejectsInvalidResult(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	actor := businessActor()
	offer := seedOffer(fixtures.store, actor.ID)

	negative := -10.0

	_, err := fixtures.service.UpdateOffer(context.Background(), actor, offer.ID, &usecase.UpdateOfferInput{
		Details: []usecase.UpdateOfferDetailInput{
			{OfferType: "basic", Price: &negative},
		},
	})

	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.FieldErrors(), "details.0.price")
}

func TestOfferService_UpdateOfferImage_ReplacesOldImage(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	actor := businessActor()
	offer := seedOffer(fixtures.store, actor.ID)
	offer.Image = "offer_images/old.png"

	updated, err := fixtures.service.UpdateOfferImage(
		context.Background(), actor, offer.ID, "new.png", strings.NewReader("image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "offer_images/new.png", updated.Image)
	assert.Contains(t, fixtures.storage.saved, "offer_images/new.png")
	assert.Contains(t, fixtures.storage.deleted, "offer_images/old.png")
}

func TestOfferService_UpdateOfferImage_CleansUpOrphanOnFailure(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	offer := seedOffer(fixtures.store, uuid.New())

	_, err := fixtures.service.UpdateOfferImage(
		context.Background(), businessActor(), offer.ID, "new.png", strings.NewReader("image-bytes"))

	assert.ErrorIs(t, err, domainerrors.ErrNotResourceOwner)
	assert.Contains(t, fixtures.storage.deleted, "offer_images/new.png", "the upload must not be left orphaned")
}

func TestOfferService_DeleteOffer_Success(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	actor := businessActor()
	offer := seedOffer(fixtures.store, actor.ID)
	offer.Image = "offer_images/cover.png"

	err := fixtures.service.DeleteOffer(context.Background(), actor, offer.ID)

	require.NoError(t, err)
	assert.Empty(t, fixtures.store.offers)
	assert.Contains(t, fixtures.storage.deleted, "offer_images/cover.png")
}

func TestOfferService_DeleteOffer_NotOwner(t *testing.T) {
	t.Parallel()

	fixtures := createTestOfferService(t)
	offer := seedOffer(fixtures.store, uuid.New())

	err := fixtures.service.DeleteOffer(context.Background(), businessActor(), offer.ID)

	assert.ErrorIs(t, err, domainerrors.ErrNotResourceOwner)
	assert.Len(t, fixtures.store.offers, 1)
}
