// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the domain.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a new review. The composite unique index on the
// (business user, reviewer) pair turns a concurrent duplicate insert into
// ErrDuplicateReview instead of a second row.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}

		return errors.Wrap(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// FindByID retrieves a single review.
func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&reviewM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return toReviewDomain(&reviewM), nil
}

// ExistsForPair reports whether the reviewer has already reviewed the business user.
func (repo *reviewRepository) ExistsForPair(ctx context.Context, reviewerID, businessUserID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("reviewer_id = ? AND business_user_id = ?", reviewerID, businessUserID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check review pair")
	}

	return count > 0, nil
}

// List retrieves reviews matching the filter.
func (repo *reviewRepository) List(ctx context.Context, filter *repository.ReviewFilter) ([]*entity.Review, error) {
	query := repo.db.WithContext(ctx).Model(&model.ReviewModel{})

	if filter.BusinessUserID != nil {
		query = query.Where("business_user_id = ?", *filter.BusinessUserID)
	}
	if filter.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filter.ReviewerID)
	}

	var reviewMs []model.ReviewModel
	if err := query.Order(reviewOrderClause(filter)).Find(&reviewMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(reviewMs))
	for i := range reviewMs {
		reviews = append(reviews, toReviewDomain(&reviewMs[i]))
	}

	return reviews, nil
}

// Update persists changes to an existing review.
func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Save(reviewM).Error; err != nil {
		return errors.Wrap(err, "failed to update review")
	}

	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// Delete removes a review.
func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ReviewModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// reviewOrderClause maps the filter's ordering key to a SQL order expression.
// Unknown keys fall back to last update time.
func reviewOrderClause(filter *repository.ReviewFilter) string {
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	if filter.OrderBy == repository.ReviewOrderRating {
		return "rating " + direction
	}

	return "updated_at " + direction
}

// --- Mapper Functions ---

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:           data.ID,
		BusinessUser: data.BusinessUserID,
		Reviewer:     data.ReviewerID,
		Rating:       data.Rating,
		Description:  data.Description,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	// CreatedAt is carried through so Save-based updates never rewrite the
	// row's creation time; GORM fills it on insert when it is zero.
	return &model.ReviewModel{
		ID:             data.ID,
		BusinessUserID: data.BusinessUser,
		ReviewerID:     data.Reviewer,
		Rating:         data.Rating,
		Description:    data.Description,
		CreatedAt:      data.CreatedAt,
	}
}
