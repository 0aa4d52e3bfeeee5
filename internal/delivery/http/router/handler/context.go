package handler

import (
	"github.com/hcplayer1988/coderr/internal/delivery/http/middleware"
	"github.com/hcplayer1988/coderr/internal/domain/entity"
	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actorFromContext rebuilds the authenticated caller's identity from the
// values the auth middleware stored on the request context.
func actorFromContext(c echo.Context) usecase.Actor {
	actor := usecase.Actor{}
	if id, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID); ok {
		actor.ID = id
	}
	if userType, ok := c.Get(middleware.ContextKeyUserType).(entity.UserType); ok {
		actor.Type = userType
	}
	if isStaff, ok := c.Get(middleware.ContextKeyIsStaff).(bool); ok {
		actor.IsStaff = isStaff
	}

	return actor
}

// pathUUID parses the named path parameter as a UUID. An unparsable value can
// never resolve to a resource, so it surfaces as not found.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrNotFound
	}

	return id, nil
}
