package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/hcplayer1988/coderr/config"
	"github.com/hcplayer1988/coderr/internal/domain/entity"
	"github.com/hcplayer1988/coderr/internal/domain/repository"
	"github.com/hcplayer1988/coderr/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Pagination = &config.PaginationConfig{
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}

	return cfg
}

// fakeStore is the shared in-memory state behind the fake repositories.
// Insertion order is preserved per collection so list results stay stable.
type fakeStore struct {
	users         map[uuid.UUID]*entity.User
	credentials   map[string]*entity.Credential
	refreshTokens map[string]*entity.RefreshToken
	offers        map[uuid.UUID]*entity.Offer
	offerIDs      []uuid.UUID
	orders        map[uuid.UUID]*entity.Order
	orderIDs      []uuid.UUID
	reviews       map[uuid.UUID]*entity.Review
	reviewIDs     []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[uuid.UUID]*entity.User),
		credentials:   make(map[string]*entity.Credential),
		refreshTokens: make(map[string]*entity.RefreshToken),
		offers:        make(map[uuid.UUID]*entity.Offer),
		orders:        make(map[uuid.UUID]*entity.Order),
		reviews:       make(map[uuid.UUID]*entity.Review),
	}
}

func (s *fakeStore) addUser(user *entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Profile == nil {
		user.Profile = &entity.Profile{}
	}
	user.Profile.UserID = user.ID
	s.users[user.ID] = user

	return user
}

func (s *fakeStore) addOffer(offer *entity.Offer) *entity.Offer {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	for i := range offer.Details {
		if offer.Details[i].ID == uuid.Nil {
			offer.Details[i].ID = uuid.New()
		}
		offer.Details[i].OfferID = offer.ID
	}
	s.offers[offer.ID] = offer
	s.offerIDs = append(s.offerIDs, offer.ID)

	return offer
}

func (s *fakeStore) addOrder(order *entity.Order) *entity.Order {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders[order.ID] = order
	s.orderIDs = append(s.orderIDs, order.ID)

	return order
}

func (s *fakeStore) addReview(review *entity.Review) *entity.Review {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	s.reviews[review.ID] = review
	s.reviewIDs = append(s.reviewIDs, review.ID)

	return review
}

// fakeTxManager runs the callback directly against the shared store; there is
// no real transaction to roll back, so failed callbacks just surface errors.
type fakeTxManager struct {
	store      *fakeStore
	executeErr error
	calls      int
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.calls++
	if m.executeErr != nil {
		return m.executeErr
	}

	return fn(&fakeFactory{store: m.store})
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) UserRepo() repository.UserRepository     { return &fakeUserRepo{store: f.store} }
func (f *fakeFactory) AuthRepo() repository.AuthRepository     { return &fakeAuthRepo{store: f.store} }
func (f *fakeFactory) OfferRepo() repository.OfferRepository   { return &fakeOfferRepo{store: f.store} }
func (f *fakeFactory) OrderRepo() repository.OrderRepository   { return &fakeOrderRepo{store: f.store} }
func (f *fakeFactory) ReviewRepo() repository.ReviewRepository { return &fakeReviewRepo{store: f.store} }
func (f *fakeFactory) StatsRepo() repository.StatsRepository   { return &fakeStatsRepo{store: f.store} }

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Username == username {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ListByType(_ context.Context, userType entity.UserType) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range r.store.users {
		if user.Type == userType {
			users = append(users, user)
		}
	}

	return users, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.addUser(user)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	r.store.users[user.ID] = user

	return nil
}

type fakeAuthRepo struct {
	store *fakeStore
}

func (r *fakeAuthRepo) CreateCredential(_ context.Context, cred *entity.Credential) error {
	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
	}
	r.store.credentials[cred.Email] = cred

	return nil
}

func (r *fakeAuthRepo) FindCredentialByEmail(_ context.Context, email string) (*entity.Credential, error) {
	cred, ok := r.store.credentials[email]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	return cred, nil
}

func (r *fakeAuthRepo) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	r.store.refreshTokens[token.TokenHash] = token

	return nil
}

func (r *fakeAuthRepo) FindRefreshTokenByHash(_ context.Context, hash string) (*entity.RefreshToken, error) {
	token, ok := r.store.refreshTokens[hash]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}

	return token, nil
}

func (r *fakeAuthRepo) DeleteRefreshTokenByHash(_ context.Context, hash string) error {
	if _, ok := r.store.refreshTokens[hash]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(r.store.refreshTokens, hash)

	return nil
}

type fakeOfferRepo struct {
	store *fakeStore
}

func (r *fakeOfferRepo) Create(_ context.Context, offer *entity.Offer) error {
	r.store.addOffer(offer)

	return nil
}

func (r *fakeOfferRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Offer, error) {
	offer, ok := r.store.offers[id]
	if !ok {
		return nil, repository.ErrOfferNotFound
	}

	return offer, nil
}

func (r *fakeOfferRepo) FindDetailByID(_ context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	for _, offer := range r.store.offers {
		for i := range offer.Details {
			if offer.Details[i].ID == id {
				return &offer.Details[i], nil
			}
		}
	}

	return nil, repository.ErrOfferDetailNotFound
}

func (r *fakeOfferRepo) List(_ context.Context, filter *repository.OfferFilter) ([]*entity.Offer, int64, error) {
	var matched []*entity.Offer
	for _, id := range r.store.offerIDs {
		offer, ok := r.store.offers[id]
		if !ok {
			continue
		}
		if filter.CreatorID != nil && offer.UserID != *filter.CreatorID {
			continue
		}
		if filter.MinPrice != nil && offer.MinPrice() < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && offer.MinPrice() > *filter.MaxPrice {
			continue
		}
		if filter.MaxDeliveryTime != nil && offer.MinDeliveryTime() > *filter.MaxDeliveryTime {
			continue
		}
		matched = append(matched, offer)
	}

	total := int64(len(matched))

	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *fakeOfferRepo) Update(_ context.Context, offer *entity.Offer) error {
	if _, ok := r.store.offers[offer.ID]; !ok {
		return repository.ErrOfferNotFound
	}
	r.store.offers[offer.ID] = offer

	return nil
}

func (r *fakeOfferRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.offers[id]; !ok {
		return repository.ErrOfferNotFound
	}
	delete(r.store.offers, id)

	return nil
}

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.store.addOrder(order)

	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

func (r *fakeOrderRepo) ListByParticipant(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, id := range r.store.orderIDs {
		order, ok := r.store.orders[id]
		if !ok {
			continue
		}
		if order.CustomerUser == userID || order.BusinessUser == userID {
			orders = append(orders, order)
		}
	}

	return orders, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if _, ok := r.store.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	r.store.orders[order.ID] = order

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.store.orders, id)

	return nil
}

func (r *fakeOrderRepo) CountByUserAndStatus(_ context.Context, userID uuid.UUID, status entity.OrderStatus) (int64, error) {
	var count int64
	for _, order := range r.store.orders {
		if order.BusinessUser == userID && order.Status == status {
			count++
		}
	}

	return count, nil
}

type fakeReviewRepo struct {
	store *fakeStore
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, existing := range r.store.reviews {
		if existing.Reviewer == review.Reviewer && existing.BusinessUser == review.BusinessUser {
			return repository.ErrDuplicateReview
		}
	}
	r.store.addReview(review)

	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	review, ok := r.store.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}

	return review, nil
}

func (r *fakeReviewRepo) ExistsForPair(_ context.Context, reviewerID, businessUserID uuid.UUID) (bool, error) {
	for _, review := range r.store.reviews {
		if review.Reviewer == reviewerID && review.BusinessUser == businessUserID {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeReviewRepo) List(_ context.Context, filter *repository.ReviewFilter) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for _, id := range r.store.reviewIDs {
		review, ok := r.store.reviews[id]
		if !ok {
			continue
		}
		if filter.BusinessUserID != nil && review.BusinessUser != *filter.BusinessUserID {
			continue
		}
		if filter.ReviewerID != nil && review.Reviewer != *filter.ReviewerID {
			continue
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := r.store.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	r.store.reviews[review.ID] = review

	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(r.store.reviews, id)

	return nil
}

type fakeStatsRepo struct {
	store *fakeStore
}

func (r *fakeStatsRepo) BaseInfo(_ context.Context) (*entity.BaseInfo, error) {
	info := &entity.BaseInfo{
		ReviewCount: int64(len(r.store.reviews)),
		OfferCount:  int64(len(r.store.offers)),
	}

	if info.ReviewCount > 0 {
		var sum int
		for _, review := range r.store.reviews {
			sum += review.Rating
		}
		avg := float64(sum) / float64(info.ReviewCount)
		info.AverageRating = math.Round(avg*10) / 10
	}

	for _, user := range r.store.users {
		if user.Type == entity.UserTypeBusiness {
			info.BusinessProfileCount++
		}
	}

	return info, nil
}

// fakeHasher derives a deterministic "hash" so tests can verify that only the
// hash, never the plaintext, is persisted.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService hands out sequential token strings and validates them by
// map lookup, sidestepping real JWT signing.
type fakeTokenService struct {
	counter       int
	accessClaims  map[string]*service.Claims
	refreshClaims map[string]*service.Claims
	refreshTTL    time.Duration
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{
		accessClaims:  make(map[string]*service.Claims),
		refreshClaims: make(map[string]*service.Claims),
		refreshTTL:    time.Hour,
	}
}

func (s *fakeTokenService) GenerateTokens(user *entity.User) (string, string, error) {
	s.counter++
	access := fmt.Sprintf("access-%d", s.counter)
	refresh := fmt.Sprintf("refresh-%d", s.counter)

	claims := &service.Claims{
		UserID:   user.ID,
		UserType: user.Type,
		IsStaff:  user.IsStaff,
	}
	s.accessClaims[access] = claims
	s.refreshClaims[refresh] = claims

	return access, refresh, nil
}

func (s *fakeTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	claims, ok := s.accessClaims[tokenString]
	if !ok {
		return nil, errors.New("unknown access token")
	}

	return claims, nil
}

func (s *fakeTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	claims, ok := s.refreshClaims[tokenString]
	if !ok {
		return nil, errors.New("unknown refresh token")
	}

	return claims, nil
}

func (s *fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// fakeStorage records Save and Delete calls instead of writing anywhere.
type fakeStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (s *fakeStorage) Save(_ context.Context, prefix, filename string, _ io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	key := prefix + "/" + filename
	s.saved = append(s.saved, key)

	return key, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)

	return nil
}
