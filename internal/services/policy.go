package services

import (
	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/models"
)

// Actor identifies the authenticated caller for authorization checks.
// Controllers build it from the JWT claims stashed by the middleware.
type Actor struct {
	ID   uuid.UUID
	Role models.RoleType
}

func (a Actor) IsAdmin() bool   { return a.Role == models.RoleAdmin }
func (a Actor) IsManager() bool { return a.Role == models.RoleManager }

// ScopeManagerID returns the manager filter to apply to list queries:
// nil for admins (see everything), the actor's own ID for managers.
// Employees get the unscoped read view.
func (a Actor) ScopeManagerID() *uuid.UUID {
	if a.IsManager() {
		id := a.ID
		return &id
	}
	return nil
}

// CanAccessProperty is the single ownership check used by every
// controller path that touches a property or something under it.
// Managers only reach properties assigned to them; requests outside
// that scope read as "not found" so existence is never leaked.
func CanAccessProperty(a Actor, p *models.Property) bool {
	switch a.Role {
	case models.RoleAdmin, models.RoleEmployee:
		return true
	case models.RoleManager:
		return p.ManagerID != nil && *p.ManagerID == a.ID
	default:
		return false
	}
}

// CanMutateProperty gates structural edits: admins always, managers on
// their own properties, employees never.
func CanMutateProperty(a Actor, p *models.Property) bool {
	if a.Role == models.RoleEmployee {
		return false
	}
	return CanAccessProperty(a, p)
}
