package handler

import (
	"net/http"

	"github.com/hcplayer1988/coderr/internal/delivery/http/response"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InfoHandler holds dependencies for the public statistics handler.
type InfoHandler struct {
	uc usecase.InfoUsecase
}

// NewInfoHandler is the constructor for InfoHandler, injected by Fx.
func NewInfoHandler(uc usecase.InfoUsecase) *InfoHandler {
	return &InfoHandler{uc: uc}
}

// BaseInfo handles the public statistics read.
func (h *InfoHandler) BaseInfo(c echo.Context) error {
	info, err := h.uc.BaseInfo(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBaseInfoResponse(info), "")
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
