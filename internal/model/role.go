package model

import "github.com/google/uuid"

// Role codes as constants
const (
	RoleMaster = "master"
	RoleAdmin  = "admin"
)

// ReadRoles may list and view catalog records; WriteRoles may mutate them.
var (
	ReadRoles  = []string{RoleAdmin, RoleMaster}
	WriteRoles = []string{RoleMaster}
)

// RoleAllowed is the capability check applied before any guarded operation.
func RoleAllowed(role string, allowed ...string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
}

// Actor is the value written to audit columns.
func (p Principal) Actor() string {
	if p.UserID == uuid.Nil {
		return "system"
	}
	return p.UserID.String()
}
