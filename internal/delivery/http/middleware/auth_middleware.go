// Package middleware contains the HTTP middlewares of the delivery layer.
package middleware

import (
	"strings"

	domainerrors "github.com/hcplayer1988/coderr/internal/domain/errors"
	"github.com/hcplayer1988/coderr/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys under which the authenticated caller's identity is stored.
const (
	ContextKeyUserID   = "userID"
	ContextKeyUserType = "userType"
	ContextKeyIsStaff  = "isStaff"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the request context. Failures surface as authentication errors
// through the central error handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrAuthenticationRequired
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrAuthenticationRequired
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return domainerrors.ErrAuthenticationRequired
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserType, claims.UserType)
		c.Set(ContextKeyIsStaff, claims.IsStaff)

		return next(c)
	}
}
