package auth

import (
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
)

// Actor is the authenticated representative a service call runs on behalf of.
type Actor struct {
	RepresentativeID uuid.UUID
	Role             enums.Role
}

// IsAdmin reports whether the actor may act across every representative's customers.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdmin
}

// CanAccess reports whether the actor may read or change data owned by ownerID.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.RepresentativeID != uuid.Nil && a.RepresentativeID == ownerID
}
