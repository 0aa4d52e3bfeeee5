// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"io"
	"log/slog"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/domain/service"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileImagePrefix is the bucket prefix for profile images.
const profileImagePrefix = "profile_images"

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	storage   service.FileStorage
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	storage service.FileStorage,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		storage:   storage,
		logger:    logger,
	}
}

// GetProfile retrieves a user together with their profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile applies a partial update to the user's profile fields. Only
// the owner may modify their profile.
func (srv *profileService) UpdateProfile(ctx context.Context, actor usecase.Actor, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating profile", "userID", userID)

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// 1. Find the user and their profile.
		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		// 2. Ownership check.
		if decision := service.AllowProfile(actor.Entity(), found.Profile, service.ActionUpdate); !decision.Allowed {
			return domainerrors.ErrNotResourceOwner
		}

		// 3. Apply the partial update.
		applyProfileInput(found, input)

		// 4. Save.
		if err := userRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfileImage stores the uploaded image and swaps the profile's object
// key. The previous image is deleted after the transaction commits.
func (srv *profileService) UpdateProfileImage(ctx context.Context, actor usecase.Actor, userID uuid.UUID, filename string, content io.Reader) (*entity.User, error) {
	srv.logger.Info("Updating profile image", "userID", userID)

	key, err := srv.storage.Save(ctx, profileImagePrefix, filename, content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store profile image")
	}

	var user *entity.User
	var oldKey string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if decision := service.AllowProfile(actor.Entity(), found.Profile, service.ActionUpdate); !decision.Allowed {
			return domainerrors.ErrNotResourceOwner
		}

		oldKey = found.Profile.File
		found.Profile.File = key

		if err := userRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
		user = found

		return nil
	})
	if err != nil {
		// The upload is orphaned if the transaction failed; remove it.
		if delErr := srv.storage.Delete(ctx, key); delErr != nil {
			srv.logger.Warn("Failed to delete orphaned upload", "key", key, "error", delErr)
		}

		return nil, err
	}

	if oldKey != "" && oldKey != key {
		if err := srv.storage.Delete(ctx, oldKey); err != nil {
			srv.logger.Warn("Failed to delete replaced profile image", "key", oldKey, "error", err)
		}
	}

	return user, nil
}

// ListBusinessProfiles retrieves all business users with their profiles.
func (srv *profileService) ListBusinessProfiles(ctx context.Context) ([]*entity.User, error) {
	return srv.listByType(ctx, entity.UserTypeBusiness)
}

// ListCustomerProfiles retrieves all customer users with their profiles.
func (srv *profileService) ListCustomerProfiles(ctx context.Context) ([]*entity.User, error) {
	return srv.listByType(ctx, entity.UserTypeCustomer)
}

func (srv *profileService) listByType(ctx context.Context, userType entity.UserType) ([]*entity.User, error) {
	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().ListByType(ctx, userType)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// applyProfileInput copies the set fields of the input onto the user.
func applyProfileInput(user *entity.User, input *usecase.UpdateProfileInput) {
	if input.FirstName != nil {
		user.Profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.Profile.LastName = *input.LastName
	}
	if input.Location != nil {
		user.Profile.Location = *input.Location
	}
	if input.Tel != nil {
		user.Profile.Tel = *input.Tel
	}
	if input.Description != nil {
		user.Profile.Description = *input.Description
	}
	if input.WorkingHours != nil {
		user.Profile.WorkingHours = *input.WorkingHours
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
}
