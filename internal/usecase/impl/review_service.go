// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/domain/service"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// duplicateReviewMessage is returned whenever the (reviewer, business user)
// pair already holds a review, whether caught by the pre-check or by the
// unique index on a concurrent create.
const duplicateReviewMessage = "You have already reviewed this business user. You can only update or delete your existing review."

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateReview creates a review about a business user. Customers only, no
// self-reviews, at most one review per (reviewer, business user) pair.
func (srv *reviewService) CreateReview(ctx context.Context, actor usecase.Actor, input *usecase.CreateReviewInput) (*entity.Review, error) {
	srv.logger.Info("Creating review", "reviewerID", actor.ID, "businessUserID", input.BusinessUser)

	if actor.Type != entity.UserTypeCustomer {
		return nil, domainerrors.ErrNotCustomerUser
	}

	vErr := domainerrors.NewValidationError()
	if !entity.RatingValid(input.Rating) {
		vErr.AddFieldError("rating", "Rating must be between 1 and 5.")
	}
	if input.BusinessUser == actor.ID {
		vErr.AddNonFieldError("You cannot review yourself.")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		// 1. The target must exist and be a business user.
		target, err := repoFactory.UserRepo().FindByID(ctx, input.BusinessUser)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.NewValidationError().
					AddFieldError("business_user", "Business user not found.")
			}

			return errors.Wrap(err, "failed to find business user")
		}
		if target.Type != entity.UserTypeBusiness {
			return domainerrors.NewValidationError().
				AddFieldError("business_user", "You can only review business users.")
		}

		// 2. One review per pair.
		exists, err := reviewRepo.ExistsForPair(ctx, actor.ID, input.BusinessUser)
		if err != nil {
			return errors.Wrap(err, "failed to check for existing review")
		}
		if exists {
			return domainerrors.NewValidationError().AddNonFieldError(duplicateReviewMessage)
		}

		// 3. Create. The unique index backs the pre-check up under races.
		created := &entity.Review{
			BusinessUser: input.BusinessUser,
			Reviewer:     actor.ID,
			Rating:       input.Rating,
			Description:  input.Description,
		}
		if err := reviewRepo.Create(ctx, created); err != nil {
			if errors.Is(err, repository.ErrDuplicateReview) {
				return domainerrors.NewValidationError().AddNonFieldError(duplicateReviewMessage)
			}

			return errors.Wrap(err, "failed to create review")
		}
		review = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ListReviews retrieves reviews matching the filters.
func (srv *reviewService) ListReviews(ctx context.Context, input *usecase.ListReviewsInput) ([]*entity.Review, error) {
	filter := buildReviewFilter(input)

	var reviews []*entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}
		reviews = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// buildReviewFilter translates the list input into a repository filter.
// Review listings always sort newest/highest first; the ordering parameter
// only selects the key.
func buildReviewFilter(input *usecase.ListReviewsInput) *repository.ReviewFilter {
	filter := &repository.ReviewFilter{
		BusinessUserID: input.BusinessUserID,
		ReviewerID:     input.ReviewerID,
		Descending:     true,
	}

	if strings.TrimPrefix(input.Ordering, "-") == repository.ReviewOrderRating {
		filter.OrderBy = repository.ReviewOrderRating
	} else {
		filter.OrderBy = repository.ReviewOrderUpdatedAt
	}

	return filter
}

// UpdateReview applies a partial update to rating and description. Only the
// author may edit; the reviewed business user can never change.
func (srv *reviewService) UpdateReview(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateReviewInput) (*entity.Review, error) {
	srv.logger.Info("Updating review", "reviewID", id)

	if input.Rating != nil && !entity.RatingValid(*input.Rating) {
		return nil, domainerrors.NewValidationError().
			AddFieldError("rating", "Rating must be between 1 and 5.")
	}

	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to find review")
		}

		if decision := service.AllowReview(actor.Entity(), found, service.ActionUpdate); !decision.Allowed {
			return domainerrors.ErrNotResourceOwner
		}

		if input.Rating != nil {
			found.Rating = *input.Rating
		}
		if input.Description != nil {
			found.Description = *input.Description
		}

		if err := reviewRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update review")
		}
		review = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview removes a review. Only the author may delete.
func (srv *reviewService) DeleteReview(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	srv.logger.Info("Deleting review", "reviewID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to find review")
		}

		if decision := service.AllowReview(actor.Entity(), found, service.ActionDelete); !decision.Allowed {
			return domainerrors.ErrNotResourceOwner
		}

		if err := reviewRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete review")
		}

		return nil
	})
}
