package handler

import (
	"log/slog"
	"net/http"

	"github.com/hcplayer1988/coderr/internal/delivery/http/response"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for review-related handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateReview handles the review creation request.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	input := new(usecase.CreateReviewInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	review, err := h.uc.CreateReview(c.Request().Context(), actorFromContext(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toReviewResponse(review), "Review created successfully")
}

// ListReviews handles the filtered review listing.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	input := &usecase.ListReviewsInput{
		Ordering: c.QueryParam("ordering"),
	}

	vErr := domainerrors.NewValidationError()
	if raw := c.QueryParam("business_user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			vErr.AddFieldError("business_user_id", "Must be a valid UUID.")
		} else {
			input.BusinessUserID = &id
		}
	}
	if raw := c.QueryParam("reviewer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			vErr.AddFieldError("reviewer_id", "Must be a valid UUID.")
		} else {
			input.ReviewerID = &id
		}
	}
	if vErr.HasErrors() {
		return vErr
	}

	reviews, err := h.uc.ListReviews(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReviewResponses(reviews), "")
}

// UpdateReview handles the partial review update.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	input := new(usecase.UpdateReviewInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	review, err := h.uc.UpdateReview(c.Request().Context(), actorFromContext(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReviewResponse(review), "Review updated successfully")
}

// DeleteReview handles the review deletion request.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteReview(c.Request().Context(), actorFromContext(c), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
