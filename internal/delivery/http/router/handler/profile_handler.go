package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hcplayer1988/coderr/internal/delivery/http/response"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile-related handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfile handles the single profile read.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user), "")
}

// UpdateProfile handles the partial profile update. A multipart body replaces
// the profile image; a JSON body patches the text fields.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	actor := actorFromContext(c)

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return h.updateProfileImage(c, actor, userID)
	}

	input := new(usecase.UpdateProfileInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), actor, userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user), "Profile updated successfully")
}

// ListBusinessProfiles handles the business profile listing.
func (h *ProfileHandler) ListBusinessProfiles(c echo.Context) error {
	users, err := h.uc.ListBusinessProfiles(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponses(users), "")
}

// ListCustomerProfiles handles the customer profile listing.
func (h *ProfileHandler) ListCustomerProfiles(c echo.Context) error {
	users, err := h.uc.ListCustomerProfiles(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponses(users), "")
}

func (h *ProfileHandler) updateProfileImage(c echo.Context, actor usecase.Actor, userID uuid.UUID) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing 'file' upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	user, err := h.uc.UpdateProfileImage(c.Request().Context(), actor, userID, fileHeader.Filename, file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user), "Profile image updated successfully")
}
