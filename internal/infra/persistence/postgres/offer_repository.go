// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Correlated subqueries deriving the aggregate tier values per offer row.
// They back both the price/delivery filters and the min_price ordering.
const (
	minPriceExpr    = "(SELECT MIN(d.price) FROM offer_details d WHERE d.offer_id = offers.id)"
	minDeliveryExpr = "(SELECT MIN(d.delivery_time_in_days) FROM offer_details d WHERE d.offer_id = offers.id)"
)

// offerRepository implements the domain.OfferRepository interface using GORM.
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

// Create persists an offer together with all of its details. GORM inserts the
// associated detail rows in the same statement batch as the offer row.
func (repo *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		return errors.Wrap(err, "failed to create offer")
	}

	// Update the offer entity with the generated IDs and timestamps.
	offer.ID = offerM.ID
	offer.CreatedAt = offerM.CreatedAt
	offer.UpdatedAt = offerM.UpdatedAt
	for i := range offerM.Details {
		offer.Details[i].ID = offerM.Details[i].ID
		offer.Details[i].OfferID = offerM.ID
		offer.Details[i].CreatedAt = offerM.Details[i].CreatedAt
		offer.Details[i].UpdatedAt = offerM.Details[i].UpdatedAt
	}

	return nil
}

// FindByID retrieves a single offer with its details.
func (repo *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offerM model.OfferModel
	err := repo.db.WithContext(ctx).
		Preload("Details").
		Where("id = ?", id).
		First(&offerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	return toOfferDomain(&offerM), nil
}

// FindDetailByID retrieves a single offer detail.
func (repo *offerRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	var detailM model.OfferDetailModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&detailM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferDetailNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer detail by id")
	}

	return toOfferDetailDomain(&detailM), nil
}

// List retrieves offers matching the filter plus the total match count before
// pagination. Price and delivery filters operate on the derived minimums
// across the offer's tiers, not on any single tier.
func (repo *offerRepository) List(ctx context.Context, filter *repository.OfferFilter) ([]*entity.Offer, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OfferModel{})

	if filter.CreatorID != nil {
		query = query.Where("user_id = ?", *filter.CreatorID)
	}
	if filter.MinPrice != nil {
		query = query.Where(minPriceExpr+" >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where(minPriceExpr+" <= ?", *filter.MaxPrice)
	}
	if filter.MaxDeliveryTime != nil {
		query = query.Where(minDeliveryExpr+" <= ?", *filter.MaxDeliveryTime)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count offers")
	}

	query = query.Order(offerOrderClause(filter)).Preload("Details")

	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var offerMs []model.OfferModel
	if err := query.Find(&offerMs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list offers")
	}

	offers := make([]*entity.Offer, 0, len(offerMs))
	for i := range offerMs {
		offers = append(offers, toOfferDomain(&offerMs[i]))
	}

	return offers, total, nil
}

// Update persists changes to the offer's own fields and its details.
func (repo *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)

	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(offerM).Error
	if err != nil {
		return errors.Wrap(err, "failed to update offer")
	}

	offer.UpdatedAt = offerM.UpdatedAt

	return nil
}

// Delete removes the offer and its detail rows.
func (repo *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("offer_id = ?", id).
		Delete(&model.OfferDetailModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete offer details")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OfferModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete offer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// offerOrderClause maps the filter's ordering key to a SQL order expression.
// Unknown keys fall back to creation time.
func offerOrderClause(filter *repository.OfferFilter) string {
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	switch filter.OrderBy {
	case repository.OfferOrderUpdatedAt:
		return "updated_at " + direction
	case repository.OfferOrderMinPrice:
		return minPriceExpr + " " + direction
	default:
		return "created_at " + direction
	}
}

// --- Mapper Functions ---

func toOfferDomain(data *model.OfferModel) *entity.Offer {
	if data == nil {
		return nil
	}

	details := make([]entity.OfferDetail, 0, len(data.Details))
	for i := range data.Details {
		details = append(details, *toOfferDetailDomain(&data.Details[i]))
	}

	return &entity.Offer{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Image:       data.Image,
		Description: data.Description,
		Details:     details,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOfferDomain(data *entity.Offer) *model.OfferModel {
	if data == nil {
		return nil
	}

	details := make([]model.OfferDetailModel, 0, len(data.Details))
	for i := range data.Details {
		details = append(details, *fromOfferDetailDomain(&data.Details[i]))
	}

	// CreatedAt is carried through so Save-based updates never rewrite the
	// row's creation time; GORM fills it on insert when it is zero.
	return &model.OfferModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Image:       data.Image,
		Description: data.Description,
		Details:     details,
		CreatedAt:   data.CreatedAt,
	}
}

func toOfferDetailDomain(data *model.OfferDetailModel) *entity.OfferDetail {
	if data == nil {
		return nil
	}

	return &entity.OfferDetail{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           []string(data.Features),
		OfferType:          entity.OfferType(data.OfferType),
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

func fromOfferDetailDomain(data *entity.OfferDetail) *model.OfferDetailModel {
	if data == nil {
		return nil
	}

	return &model.OfferDetailModel{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           datatypes.NewJSONSlice(data.Features),
		OfferType:          data.OfferType.String(),
		CreatedAt:          data.CreatedAt,
	}
}
