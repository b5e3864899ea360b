package models

import (
	"fmt"
	"time"
)

// AdminRole is one granted admin role. A user may hold several at once
// (e.g. university admin plus faculty admin of one unit).
type AdminRole struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	RoleLevel          string    `json:"role_level"` // department / faculty / university
	OrganizationUnitID *int64    `json:"organization_unit_id,omitempty"`
	DivisionID         *int64    `json:"division_id,omitempty"`
	AssignedBy         *int64    `json:"assigned_by,omitempty"`
	AssignedAt         time.Time `json:"assigned_at"`
	IsActive           bool      `json:"is_active"`
	Notes              *string   `json:"notes,omitempty"`
}

// ValidateRoleScope enforces the level/scope pairing: university roles carry no
// scope, faculty roles reference exactly one unit, department roles exactly one
// division (whose parent unit, when known, must match). Violations are
// configuration bugs and fail loudly.
func ValidateRoleScope(role *AdminRole, division *Division) error {
	switch role.RoleLevel {
	case LevelUniversity:
		if role.OrganizationUnitID != nil || role.DivisionID != nil {
			return fmt.Errorf("university role must not reference a unit or division")
		}
	case LevelFaculty:
		if role.OrganizationUnitID == nil {
			return fmt.Errorf("faculty role requires an organization unit")
		}
		if role.DivisionID != nil {
			return fmt.Errorf("faculty role must not reference a division")
		}
	case LevelDepartment:
		if role.DivisionID == nil {
			return fmt.Errorf("department role requires a division")
		}
		if division == nil {
			return fmt.Errorf("department role references unknown division %d", *role.DivisionID)
		}
		if role.OrganizationUnitID != nil && *role.OrganizationUnitID != division.OrganizationUnitID {
			return fmt.Errorf("division %d does not belong to unit %d", division.ID, *role.OrganizationUnitID)
		}
		// Backfill the unit from the division so scope queries never need a join.
		if role.OrganizationUnitID == nil {
			unitID := division.OrganizationUnitID
			role.OrganizationUnitID = &unitID
		}
	default:
		return fmt.Errorf("invalid role level %q", role.RoleLevel)
	}
	return nil
}

// HighestLevel returns the highest admin level among active roles, or none.
func HighestLevel(roles []AdminRole) string {
	highest := LevelNone
	for _, r := range roles {
		if !r.IsActive {
			continue
		}
		if LevelRank[r.RoleLevel] > LevelRank[highest] {
			highest = r.RoleLevel
		}
	}
	return highest
}
