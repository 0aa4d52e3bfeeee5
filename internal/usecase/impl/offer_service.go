// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/hcplayer1988/coderr/config"
	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/domain/service"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// offerImagePrefix is the bucket prefix for offer images.
const offerImagePrefix = "offer_images"

// Fallback pagination bounds when the config omits them.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// offerService implements the OfferUsecase interface.
type offerService struct {
	txManager repository.TransactionManager
	storage   service.FileStorage
	cfg       *config.Config
	logger    *slog.Logger
}

// NewOfferService is the constructor for offerService.
func NewOfferService(
	txManager repository.TransactionManager,
	storage service.FileStorage,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.OfferUsecase {
	return &offerService{
		txManager: txManager,
		storage:   storage,
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateOffer creates an offer with its three tier details in one
// transaction. Only business users may create offers.
func (srv *offerService) CreateOffer(ctx context.Context, actor usecase.Actor, input *usecase.CreateOfferInput) (*entity.Offer, error) {
	srv.logger.Info("Creating offer", "userID", actor.ID)

	if actor.Type != entity.UserTypeBusiness {
		return nil, domainerrors.ErrNotBusinessUser
	}

	offer := &entity.Offer{
		UserID:      actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Details:     make([]entity.OfferDetail, 0, len(input.Details)),
	}
	for _, d := range input.Details {
		offer.Details = append(offer.Details, entity.OfferDetail{
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           d.Features,
			OfferType:          entity.OfferType(d.OfferType),
		})
	}

	if fieldErrs := offer.Validate(); len(fieldErrs) > 0 {
		return nil, fieldErrorsToValidation(fieldErrs)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.OfferRepo().Create(ctx, offer); err != nil {
			return errors.Wrap(err, "failed to create offer")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return offer, nil
}

// GetOffer retrieves a single offer with its details.
func (srv *offerService) GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offer *entity.Offer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OfferRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return domainerrors.ErrOfferNotFound
			}

			return errors.Wrap(err, "failed to find offer")
		}
		offer = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return offer, nil
}

// GetOfferDetail retrieves a single tier detail.
func (srv *offerService) GetOfferDetail(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	var detail *entity.OfferDetail

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OfferRepo().FindDetailByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return domainerrors.ErrOfferDetailNotFound
			}

			return errors.Wrap(err, "failed to find offer detail")
		}
		detail = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// ListOffers retrieves one page of offers plus the creators of the returned
// offers, so list renderings can embed author information.
func (srv *offerService) ListOffers(ctx context.Context, input *usecase.ListOffersInput) (*usecase.ListOffersOutput, error) {
	filter := srv.buildOfferFilter(input)

	output := &usecase.ListOffersOutput{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Creators: make(map[uuid.UUID]*entity.User),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offers, total, err := repoFactory.OfferRepo().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list offers")
		}
		output.Offers = offers
		output.Total = total

		// Resolve the creators of this page once each.
		userRepo := repoFactory.UserRepo()
		for _, offer := range offers {
			if _, ok := output.Creators[offer.UserID]; ok {
				continue
			}

			creator, err := userRepo.FindByID(ctx, offer.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					continue
				}

				return errors.Wrap(err, "failed to find offer creator")
			}
			output.Creators[offer.UserID] = creator
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// UpdateOffer applies a partial update. Details are addressed by offer_type;
// the tier set itself never changes.
func (srv *offerService) UpdateOffer(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateOfferInput) (*entity.Offer, error) {
	srv.logger.Info("Updating offer", "offerID", id)

	var offer *entity.Offer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		// 1. Find the offer.
		found, err := offerRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return domainerrors.ErrOfferNotFound
			}

			return errors.Wrap(err, "failed to find offer")
		}

		// 2. Ownership check.
		if decision := service.AllowOffer(actor.Entity(), found, service.ActionUpdate); !decision.Allowed {
			return domainerrors.ErrNotResourceOwner
		}

		// 3. Apply the partial update.
		if input.Title != nil {
			found.Title = *input.Title
		}
		if input.Description != nil {
			found.Description = *input.Description
		}
		for i := range input.Details {
			d := &input.Details[i]

			detail := found.DetailByType(entity.OfferType(d.OfferType))
			if detail == nil {
				return domainerrors.NewValidationError().
					AddFieldError("details", "Offer has no detail with offer_type '"+d.OfferType+"'.")
			}

			if d.Title != nil {
				detail.Title = *d.Title
			}
			if d.Revisions != nil {
				detail.Revisions = *d.Revisions
			}
			if d.DeliveryTimeInDays != nil {
				detail.DeliveryTimeInDays = *d.DeliveryTimeInDays
			}
			if d.Price != nil {
				detail.Price = *d.Price
			}
			if d.Features != nil {
				detail.Features = *d.Features
			}
		}

		// 4. Re-validate the whole aggregate after the update.
		if fieldErrs := found.Validate(); len(fieldErrs) > 0 {
			return fieldErrorsToValidation(fieldErrs)
		}

		// 5. Save.
		if err := offerRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update offer")
		}
		offer = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return offer, nil
}

// UpdateOfferImage stores the uploaded image and swaps the offer's object
// key. The previous image is deleted after the transaction commits.
func (srv *offerService) UpdateOfferImage(ctx context.Context, actor usecase.Actor, id uuid.UUID, filename string, content io.Reader) (*entity.Offer, error) {
	srv.logger.Info("Updating offer image", "offerID", id)

	key, err := srv.storage.Save(ctx, offerImagePrefix, filename, content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store offer image")
	}

	var offer *entity.Offer
	var oldKey string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		found, err := offerRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return domainerrors.ErrOfferNotFound
			}

			return errors.Wrap(err, "failed to find offer")
		}

		if decision := service.AllowOffer(actor.Entity(), found, service.ActionUpdate); !decision.Allowed {
			return domainerrors.ErrNotResourceOwner
		}

		oldKey = found.Image
		found.Image = key

		if err := offerRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update offer")
		}
		offer = found

		return nil
	})
	if err != nil {
		if delErr := srv.storage.Delete(ctx, key); delErr != nil {
			srv.logger.Warn("Failed to delete orphaned upload", "key", key, "error", delErr)
		}

		return nil, err
	}

	if oldKey != "" && oldKey != key {
		if err := srv.storage.Delete(ctx, oldKey); err != nil {
			srv.logger.Warn("Failed to delete replaced offer image", "key", oldKey, "error", err)
		}
	}

	return offer, nil
}

// DeleteOffer removes an offer with its details. Only the creator may delete.
func (srv *offerService) DeleteOffer(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	srv.logger.Info("Deleting offer", "offerID", id)

	var imageKey string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()

		found, err := offerRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOfferNotFound) {
				return domainerrors.ErrOfferNotFound
			}

			return errors.Wrap(err, "failed to find offer")
		}

		if decision := service.AllowOffer(actor.Entity(), found, service.ActionDelete); !decision.Allowed {
			return domainerrors.ErrNotResourceOwner
		}

		imageKey = found.Image

		if err := offerRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete offer")
		}

		return nil
	})
	if err != nil {
		return err
	}

	if imageKey != "" {
		if err := srv.storage.Delete(ctx, imageKey); err != nil {
			srv.logger.Warn("Failed to delete offer image", "key", imageKey, "error", err)
		}
	}

	return nil
}

// buildOfferFilter translates the list input into a repository filter,
// normalizing ordering and clamping pagination to the configured bounds.
func (srv *offerService) buildOfferFilter(input *usecase.ListOffersInput) *repository.OfferFilter {
	filter := &repository.OfferFilter{
		CreatorID:       input.CreatorID,
		MinPrice:        input.MinPrice,
		MaxPrice:        input.MaxPrice,
		MaxDeliveryTime: input.MaxDeliveryTime,
		Search:          input.Search,
	}

	ordering := input.Ordering
	if strings.HasPrefix(ordering, "-") {
		filter.Descending = true
		ordering = strings.TrimPrefix(ordering, "-")
	}
	switch ordering {
	case repository.OfferOrderCreatedAt, repository.OfferOrderUpdatedAt, repository.OfferOrderMinPrice:
		filter.OrderBy = ordering
	default:
		// Newest offers first when no (or an unknown) ordering is requested.
		filter.OrderBy = repository.OfferOrderCreatedAt
		filter.Descending = true
	}

	defSize, maxSize := defaultPageSize, maxPageSize
	if srv.cfg.Pagination != nil {
		if srv.cfg.Pagination.DefaultPageSize > 0 {
			defSize = srv.cfg.Pagination.DefaultPageSize
		}
		if srv.cfg.Pagination.MaxPageSize > 0 {
			maxSize = srv.cfg.Pagination.MaxPageSize
		}
	}

	filter.Page = input.Page
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PageSize = input.PageSize
	if filter.PageSize <= 0 {
		filter.PageSize = defSize
	}
	if filter.PageSize > maxSize {
		filter.PageSize = maxSize
	}

	return filter
}

// fieldErrorsToValidation converts entity-level field errors into the shared
// validation error shape.
func fieldErrorsToValidation(fieldErrs []entity.FieldError) *domainerrors.ValidationError {
	vErr := domainerrors.NewValidationError()
	for _, fe := range fieldErrs {
		vErr.AddFieldError(fe.Field, fe.Message)
	}

	return vErr
}
