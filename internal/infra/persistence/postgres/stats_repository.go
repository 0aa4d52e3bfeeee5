// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// statsRepository implements the domain.StatsRepository interface using GORM.
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// BaseInfo computes the public platform statistics at request time. The
// average rating is rounded to one decimal in SQL and reported as 0.0 when no
// reviews exist.
func (repo *statsRepository) BaseInfo(ctx context.Context) (*entity.BaseInfo, error) {
	info := &entity.BaseInfo{}

	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Count(&info.ReviewCount).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	err = repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select("COALESCE(ROUND(AVG(rating)::numeric, 1), 0.0)").
		Scan(&info.AverageRating).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to average ratings")
	}

	err = repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("type = ?", entity.UserTypeBusiness.String()).
		Count(&info.BusinessProfileCount).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count business profiles")
	}

	err = repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Count(&info.OfferCount).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count offers")
	}

	return info, nil
}
