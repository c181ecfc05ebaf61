package models

import "github.com/google/uuid"

// Role is what an actor is allowed to act as
type Role string

const (
	RoleCustomer Role = "customer"
	RoleTrucker  Role = "trucker"
	RoleAdmin    Role = "admin"
	// RoleSystem is used for transitions and refunds triggered internally
	RoleSystem Role = "system"
)

// Actor is the authenticated principal performing an operation
type Actor struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// IsAdmin reports whether the actor bypasses party checks
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSystem
}

// SystemActor is the actor used by background consumers
var SystemActor = Actor{UserID: uuid.Nil, Role: RoleSystem}
