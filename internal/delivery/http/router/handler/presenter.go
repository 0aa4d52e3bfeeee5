// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"github.com/hcplayer1988/coderr/internal/domain/entity"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
)

// ProfileResponse is the JSON shape of a user with their profile.
type ProfileResponse struct {
	User         uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Type         string    `json:"type"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserDetails is the compact author block embedded in offer listings.
type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferDetailResponse is the JSON shape of one pricing tier.
type OfferDetailResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
}

// OfferResponse is the JSON shape of an offer with its tiers and derived
// minimums.
type OfferResponse struct {
	ID              uuid.UUID             `json:"id"`
	User            uuid.UUID             `json:"user"`
	Title           string                `json:"title"`
	Image           string                `json:"image"`
	Description     string                `json:"description"`
	Details         []OfferDetailResponse `json:"details"`
	MinPrice        float64               `json:"min_price"`
	MinDeliveryTime int                   `json:"min_delivery_time"`
	UserDetails     *UserDetails          `json:"user_details,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// OfferPage is the paginated offer list payload.
type OfferPage struct {
	Count    int64           `json:"count"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Results  []OfferResponse `json:"results"`
}

// OrderResponse is the JSON shape of an order snapshot.
type OrderResponse struct {
	ID                 uuid.UUID `json:"id"`
	CustomerUser       uuid.UUID `json:"customer_user"`
	BusinessUser       uuid.UUID `json:"business_user"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ReviewResponse is the JSON shape of a review.
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessUser uuid.UUID `json:"business_user"`
	Reviewer     uuid.UUID `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BaseInfoResponse is the JSON shape of the public statistics rollup.
type BaseInfoResponse struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

func toProfileResponse(user *entity.User) ProfileResponse {
	resp := ProfileResponse{
		User:      user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Type:      user.Type.String(),
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		resp.FirstName = user.Profile.FirstName
		resp.LastName = user.Profile.LastName
		resp.File = user.Profile.File
		resp.Location = user.Profile.Location
		resp.Tel = user.Profile.Tel
		resp.Description = user.Profile.Description
		resp.WorkingHours = user.Profile.WorkingHours
	}

	return resp
}

func toProfileResponses(users []*entity.User) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toProfileResponse(u))
	}

	return out
}

func toOfferDetailResponse(d *entity.OfferDetail) OfferDetailResponse {
	features := d.Features
	if features == nil {
		features = []string{}
	}

	return OfferDetailResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           features,
		OfferType:          d.OfferType.String(),
	}
}

func toOfferResponse(offer *entity.Offer, creator *entity.User) OfferResponse {
	details := make([]OfferDetailResponse, 0, len(offer.Details))
	for i := range offer.Details {
		details = append(details, toOfferDetailResponse(&offer.Details[i]))
	}

	resp := OfferResponse{
		ID:              offer.ID,
		User:            offer.UserID,
		Title:           offer.Title,
		Image:           offer.Image,
		Description:     offer.Description,
		Details:         details,
		MinPrice:        offer.MinPrice(),
		MinDeliveryTime: offer.MinDeliveryTime(),
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
	}
	if creator != nil {
		userDetails := UserDetails{Username: creator.Username}
		if creator.Profile != nil {
			userDetails.FirstName = creator.Profile.FirstName
			userDetails.LastName = creator.Profile.LastName
		}
		resp.UserDetails = &userDetails
	}

	return resp
}

func toOfferPage(output *usecase.ListOffersOutput) OfferPage {
	results := make([]OfferResponse, 0, len(output.Offers))
	for _, offer := range output.Offers {
		results = append(results, toOfferResponse(offer, output.Creators[offer.UserID]))
	}

	return OfferPage{
		Count:    output.Total,
		Page:     output.Page,
		PageSize: output.PageSize,
		Results:  results,
	}
}

func toOrderResponse(order *entity.Order) OrderResponse {
	features := order.Features
	if features == nil {
		features = []string{}
	}

	return OrderResponse{
		ID:                 order.ID,
		CustomerUser:       order.CustomerUser,
		BusinessUser:       order.BusinessUser,
		Title:              order.Title,
		Revisions:          order.Revisions,
		DeliveryTimeInDays: order.DeliveryTimeInDays,
		Price:              order.Price,
		Features:           features,
		OfferType:          order.OfferType.String(),
		Status:             order.Status.String(),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

func toOrderResponses(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}

	return out
}

func toReviewResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID,
		BusinessUser: review.BusinessUser,
		Reviewer:     review.Reviewer,
		Rating:       review.Rating,
		Description:  review.Description,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
}

func toReviewResponses(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}

	return out
}

func toBaseInfoResponse(info *entity.BaseInfo) BaseInfoResponse {
	return BaseInfoResponse{
		ReviewCount:          info.ReviewCount,
		AverageRating:        info.AverageRating,
		BusinessProfileCount: info.BusinessProfileCount,
		OfferCount:           info.OfferCount,
	}
}
