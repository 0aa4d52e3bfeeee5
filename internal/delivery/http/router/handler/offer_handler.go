package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hcplayer1988/coderr/internal/delivery/http/response"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OfferHandler holds dependencies for offer-related handlers.
type OfferHandler struct {
	uc     usecase.OfferUsecase
	logger *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler, injected by Fx.
func NewOfferHandler(uc usecase.OfferUsecase, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateOffer handles the offer creation request.
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	input := new(usecase.CreateOfferInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	offer, err := h.uc.CreateOffer(c.Request().Context(), actorFromContext(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOfferResponse(offer, nil), "Offer created successfully")
}

// GetOffer handles the single offer read.
func (h *OfferHandler) GetOffer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	offer, err := h.uc.GetOffer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOfferResponse(offer, nil), "")
}

// GetOfferDetail handles the single tier read.
func (h *OfferHandler) GetOfferDetail(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.GetOfferDetail(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOfferDetailResponse(detail), "")
}

// ListOffers handles the filtered, paginated offer listing.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	input, err := parseListOffersQuery(c)
	if err != nil {
		return err
	}

	output, err := h.uc.ListOffers(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOfferPage(output), "")
}

// UpdateOffer handles the partial offer update. A multipart body replaces the
// offer image; a JSON body patches fields and tier details.
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	actor := actorFromContext(c)

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return h.updateOfferImage(c, actor, id)
	}

	input := new(usecase.UpdateOfferInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	offer, err := h.uc.UpdateOffer(c.Request().Context(), actor, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOfferResponse(offer, nil), "Offer updated successfully")
}

// DeleteOffer handles the offer deletion request.
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOffer(c.Request().Context(), actorFromContext(c), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *OfferHandler) updateOfferImage(c echo.Context, actor usecase.Actor, id uuid.UUID) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing 'image' upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	offer, err := h.uc.UpdateOfferImage(c.Request().Context(), actor, id, fileHeader.Filename, file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOfferResponse(offer, nil), "Offer image updated successfully")
}

// parseListOffersQuery translates the query string into a list input,
// collecting every malformed parameter into one validation error.
func parseListOffersQuery(c echo.Context) (*usecase.ListOffersInput, error) {
	input := &usecase.ListOffersInput{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}

	vErr := domainerrors.NewValidationError()

	if raw := c.QueryParam("creator_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			vErr.AddFieldError("creator_id", "Must be a valid UUID.")
		} else {
			input.CreatorID = &id
		}
	}
	if raw := c.QueryParam("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			vErr.AddFieldError("min_price", "Must be a number.")
		} else {
			input.MinPrice = &v
		}
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			vErr.AddFieldError("max_price", "Must be a number.")
		} else {
			input.MaxPrice = &v
		}
	}
	if raw := c.QueryParam("max_delivery_time"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			vErr.AddFieldError("max_delivery_time", "Must be an integer.")
		} else {
			input.MaxDeliveryTime = &v
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			vErr.AddFieldError("page", "Must be a positive integer.")
		} else {
			input.Page = v
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			vErr.AddFieldError("page_size", "Must be a positive integer.")
		} else {
			input.PageSize = v
		}
	}

	if vErr.HasErrors() {
		return nil, vErr
	}

	return input, nil
}
