// Package usecase contains the application-specific business rules.
package usecase

import (
	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller, as carried by the access token
// claims. It is resolved by the auth middleware and passed into the use cases
// that enforce ownership or role rules.
type Actor struct {
	ID      uuid.UUID
	Type    entity.UserType
	IsStaff bool
}

// Entity returns a minimal User entity for capability checks.
func (a Actor) Entity() *entity.User {
	return &entity.User{
		ID:      a.ID,
		Type:    a.Type,
		IsStaff: a.IsStaff,
	}
}
